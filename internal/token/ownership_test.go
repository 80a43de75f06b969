package token

import (
	"errors"
	"testing"
)

func TestAuthorizeOwner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		claims    *Claims
		requested string
		wantErr   bool
	}{
		{
			name:      "exact match authorized",
			claims:    &Claims{Email: "a@x.com"},
			requested: "a@x.com",
		},
		{
			name:      "different owner rejected",
			claims:    &Claims{Email: "a@x.com"},
			requested: "b@x.com",
			wantErr:   true,
		},
		{
			name:      "case difference rejected",
			claims:    &Claims{Email: "a@x.com"},
			requested: "A@X.COM",
			wantErr:   true,
		},
		{
			name:      "partial match rejected",
			claims:    &Claims{Email: "a@x.com"},
			requested: "a@x.co",
			wantErr:   true,
		},
		{
			name:      "missing scope parameter rejected",
			claims:    &Claims{Email: "a@x.com"},
			requested: "",
			wantErr:   true,
		},
		{
			name:      "empty identity never authorizes",
			claims:    &Claims{Email: ""},
			requested: "",
			wantErr:   true,
		},
		{
			name:      "nil claims rejected",
			claims:    nil,
			requested: "a@x.com",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := AuthorizeOwner(tt.claims, tt.requested)
			if tt.wantErr {
				if !errors.Is(err, ErrOwnershipMismatch) {
					t.Errorf("Expected ErrOwnershipMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected authorization, got %v", err)
			}
		})
	}
}
