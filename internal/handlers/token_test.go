package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/volunteernetwork/api/internal/token"
	"go.uber.org/zap"
)

func TestIssueToken(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer("test-secret")
	verifier := token.NewVerifier("test-secret")
	handler := NewTokenHandler(issuer, zap.NewNop())

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{"email":"volunteer@example.com","role":"organizer"}`))
	w := httptest.NewRecorder()

	handler.IssueToken(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var body TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if body.Token == "" {
		t.Fatal("Expected a token in the response")
	}

	claims, err := verifier.Verify(body.Token)
	if err != nil {
		t.Fatalf("Issued token failed verification: %v", err)
	}

	if claims.Email != "volunteer@example.com" {
		t.Errorf("Expected email 'volunteer@example.com', got '%s'", claims.Email)
	}

	if claims.Raw["role"] != "organizer" {
		t.Errorf("Expected role claim to survive the round trip, got %v", claims.Raw["role"])
	}
}

func TestIssueToken_InvalidBody(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer("test-secret")
	handler := NewTokenHandler(issuer, zap.NewNop())

	tests := []struct {
		name string
		body string
	}{
		{
			name: "not json",
			body: "not json at all",
		},
		{
			name: "json null",
			body: "null",
		},
		{
			name: "empty body",
			body: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("POST", "/jwt", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.IssueToken(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", resp.StatusCode)
			}
		})
	}
}
