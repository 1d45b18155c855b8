package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks a user's password.
type Verifier interface {
	Verify(ctx context.Context, user, password string) error
}

const passwordKey = "password"

type credentialsFile struct {
	passwords map[string]string
}

// NewINIVerifier reads an ini file with one section per user holding a
// password key.
func NewINIVerifier(path string) (Verifier, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}

	passwords := make(map[string]string)
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection || !section.HasKey(passwordKey) {
			continue
		}
		passwords[strings.TrimSpace(section.Name())] = section.Key(passwordKey).String()
	}
	if len(passwords) == 0 {
		return nil, fmt.Errorf("credentials file %s defines no users", path)
	}

	return &credentialsFile{passwords: passwords}, nil
}

func (c *credentialsFile) Verify(_ context.Context, user, password string) error {
	expected, ok := c.passwords[strings.TrimSpace(user)]
	if !ok {
		return ErrInvalidCredentials
	}
	if !equal(expected, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// Demo accounts User001..User020 share one password.
const demoUsers = 20

type sharedPassword struct {
	users    map[string]struct{}
	password string
}

func NewSharedPasswordVerifier(password string) Verifier {
	users := make(map[string]struct{}, demoUsers)
	for i := 1; i <= demoUsers; i++ {
		users[fmt.Sprintf("User%03d", i)] = struct{}{}
	}
	return &sharedPassword{users: users, password: password}
}

func (s *sharedPassword) Verify(_ context.Context, user, password string) error {
	if _, ok := s.users[strings.TrimSpace(user)]; !ok {
		return ErrInvalidCredentials
	}
	if s.password == "" || !equal(s.password, password) {
		return ErrInvalidCredentials
	}
	return nil
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
