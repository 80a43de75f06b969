package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/volunteernetwork/api/internal/request"
	"github.com/volunteernetwork/api/internal/token"
	"go.uber.org/zap"
)

const testSecret = "auth-middleware-test-secret"

func signTestToken(t *testing.T, email string, expiresAt time.Time) string {
	t.Helper()

	tok, err := jwt.NewBuilder().
		Claim("email", email).
		IssuedAt(time.Now()).
		Expiration(expiresAt).
		Build()
	if err != nil {
		t.Fatalf("Failed to build token: %v", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte(testSecret)))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	return string(signed)
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	verifier := token.NewVerifier(testSecret)

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := Auth(verifier, zap.NewNop())(handler)

	req := httptest.NewRequest("GET", "/event", nil)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if handlerCalled {
		t.Error("Handler should not be reached without an Authorization header")
	}

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Expected exactly one JSON error response, decode failed: %v", err)
	}
	if body.Success {
		t.Error("Expected success false")
	}
	if body.Error != "Unauthorized" {
		t.Errorf("Expected error 'Unauthorized', got '%s'", body.Error)
	}
	if body.Message == "" || body.Timestamp == "" {
		t.Errorf("Expected the standard error envelope, got %+v", body)
	}
}

func TestAuth_RejectedTokens(t *testing.T) {
	t.Parallel()

	verifier := token.NewVerifier(testSecret)

	tests := []struct {
		name   string
		header string
	}{
		{
			name:   "malformed scheme",
			header: "Basic dXNlcjpwYXNz",
		},
		{
			name:   "bearer with no token",
			header: "Bearer ",
		},
		{
			name:   "garbage token",
			header: "Bearer not-a-jwt",
		},
		{
			name:   "wrong signing key",
			header: "Bearer " + signWithWrongKey(t),
		},
		{
			name:   "expired token",
			header: "Bearer " + signExpiredToken(t),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handlerCalled := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			middleware := Auth(verifier, zap.NewNop())(handler)

			req := httptest.NewRequest("GET", "/event", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()

			middleware.ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			if handlerCalled {
				t.Error("Handler should not be reached with a rejected token")
			}

			if resp.StatusCode != http.StatusForbidden {
				t.Errorf("Expected status 403, got %d", resp.StatusCode)
			}

			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Expected exactly one JSON error response, decode failed: %v", err)
			}
			if body.Success {
				t.Error("Expected success false")
			}
			if body.Error != "Forbidden" {
				t.Errorf("Expected error 'Forbidden', got '%s'", body.Error)
			}
			if body.Message == "" || body.Timestamp == "" {
				t.Errorf("Expected the standard error envelope, got %+v", body)
			}
		})
	}
}

func signWithWrongKey(t *testing.T) string {
	t.Helper()

	tok, err := jwt.NewBuilder().
		Claim("email", "volunteer@example.com").
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour)).
		Build()
	if err != nil {
		t.Fatalf("Failed to build token: %v", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte("some-other-secret")))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	return string(signed)
}

func signExpiredToken(t *testing.T) string {
	t.Helper()
	return signTestToken(t, "volunteer@example.com", time.Now().Add(-time.Minute))
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	verifier := token.NewVerifier(testSecret)

	var gotEmail string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := request.ClaimsFromContext(r)
		if claims == nil {
			t.Error("Expected claims in request context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		gotEmail = claims.Email
		w.WriteHeader(http.StatusOK)
	})

	middleware := Auth(verifier, zap.NewNop())(handler)

	signed := signTestToken(t, "volunteer@example.com", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/event", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if gotEmail != "volunteer@example.com" {
		t.Errorf("Expected email 'volunteer@example.com' in claims, got '%s'", gotEmail)
	}
}
