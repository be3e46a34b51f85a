package domain

import "time"

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
// This is the boundary to the external identity provider: profile-scoped
// operations resolve the caller through it.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
