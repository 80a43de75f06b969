package token

import "errors"

// ErrOwnershipMismatch indicates the requested scope does not belong to the
// authenticated identity.
var ErrOwnershipMismatch = errors.New("requested scope does not match authenticated identity")

// AuthorizeOwner compares the authenticated identity against a caller-supplied
// owner scope. Equality is exact: no case folding, no partial match. The check
// runs before any store lookup, so a scope that does not exist at all is
// indistinguishable from one the caller is not allowed to see.
func AuthorizeOwner(claims *Claims, requestedEmail string) error {
	if claims == nil || claims.Email == "" {
		return ErrOwnershipMismatch
	}
	if claims.Email != requestedEmail {
		return ErrOwnershipMismatch
	}
	return nil
}
