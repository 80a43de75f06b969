package middleware

import (
	"errors"
	"net/http"
	"strings"

	logpkg "github.com/volunteernetwork/api/internal/logger"
	"github.com/volunteernetwork/api/internal/request"
	"github.com/volunteernetwork/api/internal/token"
	"go.uber.org/zap"
)

// Auth creates authentication middleware that validates bearer tokens.
//
// A request with no Authorization header gets exactly one 401 and never
// reaches the protected handler. A request whose credential fails
// verification (malformed bearer value, bad signature, expiry) gets exactly
// one 403, likewise without reaching the handler. On success the decoded
// claims are attached to the request context for downstream use.
func Auth(verifier *token.Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondErrorJSON(w, r, http.StatusUnauthorized, "Unauthorized", "Missing Authorization header", logger)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				// A present but malformed credential is a failed
				// verification, not a missing one
				respondErrorJSON(w, r, http.StatusForbidden, "Forbidden", "Invalid or expired token", logger)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				reason := "invalid"
				if errors.Is(err, token.ErrTokenExpired) {
					reason = "expired"
				}
				logger.Warn("token_verification_failed",
					zap.String("reason", reason),
					zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				)
				respondErrorJSON(w, r, http.StatusForbidden, "Forbidden", "Invalid or expired token", logger)
				return
			}

			ctx := request.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
