package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type TokenParser interface {
	Parse(token string) (string, error)
}

type userKey struct{}

// AuthenticatedUser returns the token subject stored by RequireUser.
func AuthenticatedUser(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(userKey{}).(string)
	return user, ok
}

// RequireUser admits requests carrying a bearer token whose subject is the
// user addressed by the route.
func RequireUser(parser TokenParser, routeUser func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger := zerolog.Ctx(req.Context())

			header := req.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="carbon-atlas"`)
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			subject, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				logger.Warn().Err(err).Msg("rejected token")
				w.Header().Set("WWW-Authenticate", `Bearer realm="carbon-atlas", error="invalid_token"`)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if subject != strings.TrimSpace(routeUser(req)) {
				logger.Warn().Str("subject", subject).Msg("token subject does not own the requested user")
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			reqLogger := logger.With().Str("auth_user", subject).Logger()
			ctx := context.WithValue(reqLogger.WithContext(req.Context()), userKey{}, subject)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
