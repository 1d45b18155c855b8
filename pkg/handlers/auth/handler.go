package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/api"
	"github.com/de-tools/carbon-atlas/pkg/services/auth"
	"github.com/rs/zerolog"
)

type TokenIssuer interface {
	Issue(user string) (string, time.Time, error)
}

type Handler struct {
	verifier auth.Verifier
	issuer   TokenIssuer
}

func NewHandler(verifier auth.Verifier, issuer TokenIssuer) *Handler {
	return &Handler{
		verifier: verifier,
		issuer:   issuer,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var request api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user := strings.TrimSpace(request.User)
	if user == "" {
		http.Error(w, "user is required", http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(ctx, user, request.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.Warn().Str("user", user).Msg("rejected login")
			http.Error(w, "invalid user or password", http.StatusUnauthorized)
			return
		}
		logger.Error().Err(err).Str("user", user).Msg("failed to verify credentials")
		http.Error(w, "failed to verify credentials", http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.issuer.Issue(user)
	if err != nil {
		logger.Error().Err(err).Str("user", user).Msg("failed to issue token")
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(api.LoginResponse{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("user", user).
			Msg("failed to encode login response")
	}
}
