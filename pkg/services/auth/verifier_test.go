package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileVerifier(t *testing.T) {
	path := writeCredentials(t, `
[User001]
password = s3cret

[User002]
password = other

[no-password]
role = viewer
`)

	v, err := NewINIVerifier(path)
	require.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, v.Verify(ctx, "User001", "s3cret"))
	assert.NoError(t, v.Verify(ctx, " User001 ", "s3cret"))
	assert.ErrorIs(t, v.Verify(ctx, "User001", "other"), ErrInvalidCredentials)
	assert.ErrorIs(t, v.Verify(ctx, "User003", "s3cret"), ErrInvalidCredentials)
	assert.ErrorIs(t, v.Verify(ctx, "no-password", ""), ErrInvalidCredentials)
}

func TestFileVerifier_Errors(t *testing.T) {
	_, err := NewINIVerifier(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)

	_, err = NewINIVerifier(writeCredentials(t, "[User001]\nrole = viewer\n"))
	assert.ErrorContains(t, err, "defines no users")
}

func TestSharedPasswordVerifier(t *testing.T) {
	ctx := context.Background()
	v := NewSharedPasswordVerifier("demo")

	assert.NoError(t, v.Verify(ctx, "User001", "demo"))
	assert.NoError(t, v.Verify(ctx, "User020", "demo"))
	assert.ErrorIs(t, v.Verify(ctx, "User021", "demo"), ErrInvalidCredentials)
	assert.ErrorIs(t, v.Verify(ctx, "User005", "wrong"), ErrInvalidCredentials)

	empty := NewSharedPasswordVerifier("")
	assert.ErrorIs(t, empty.Verify(ctx, "User001", ""), ErrInvalidCredentials)
}
