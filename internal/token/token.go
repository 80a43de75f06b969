package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenTTL is the fixed lifetime of an issued token. Tokens are not renewable
// and there is no revocation list; a token stays valid until this window ends.
const TokenTTL = time.Hour

var (
	// ErrTokenInvalid indicates a token that is malformed or carries a bad signature
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired indicates a structurally valid token past its expiry
	ErrTokenExpired = errors.New("token is expired")
)

// Claims is the identity payload recovered from a verified token. Raw holds
// the caller-supplied claim set exactly as it was signed.
type Claims struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Raw       map[string]any
}

// Issuer signs identity claims into bearer tokens using a symmetric secret.
type Issuer struct {
	secret []byte
}

// NewIssuer creates a token issuer for the given signing secret
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs the caller-supplied claim set as-is with an expiry of
// TokenTTL from now. No claim schema is enforced: whatever identity data the
// caller submits at login becomes the trusted claim. The issued-at and expiry
// timestamps are set by the server and win over caller-supplied values.
func (i *Issuer) Issue(claims map[string]any) (string, error) {
	builder := jwt.NewBuilder()
	for name, value := range claims {
		builder = builder.Claim(name, value)
	}

	now := time.Now()
	builder = builder.IssuedAt(now).Expiration(now.Add(TokenTTL))

	tok, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, i.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// Verifier validates and decodes bearer tokens. Deterministic for a given
// secret: the same token always yields the same outcome.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a token verifier for the given signing secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token string. It returns the embedded claims
// on success, ErrTokenExpired for a well-formed token past its expiry, and
// ErrTokenInvalid for anything else (bad signature, malformed input).
// Structurally malformed input never panics.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse([]byte(tokenString),
		jwt.WithKey(jwa.HS256, v.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims := &Claims{
		IssuedAt:  tok.IssuedAt(),
		ExpiresAt: tok.Expiration(),
		Raw:       tok.PrivateClaims(),
	}

	if email, ok := claims.Raw["email"].(string); ok {
		claims.Email = email
	}

	return claims, nil
}
