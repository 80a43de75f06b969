package request

import (
	"context"
	"net/http"
	"strings"

	"github.com/volunteernetwork/api/internal/token"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ClientIP extracts the client IP from the request, respecting X-Forwarded-For and X-Real-IP.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}

// WithClaims returns a context with the authenticated claims attached. The
// claims belong to exactly one in-flight request and are discarded with it.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the authenticated claims from the request
// context, or nil if missing or wrong type.
func ClaimsFromContext(r *http.Request) *token.Claims {
	c, _ := r.Context().Value(claimsContextKey).(*token.Claims)
	return c
}
