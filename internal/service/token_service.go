package service

import (
	"time"

	"leadapi/internal/domain"
)

// TokenService issues and verifies the stateless session tokens carried in
// the admin cookie.
type TokenService interface {
	// Issue produces a signed token for subject with the given role and TTL.
	Issue(subject, role string, ttl time.Duration) (string, error)
	// Verify returns the decoded claims, or domain.ErrInvalidToken for
	// anything unacceptable. Malformed, tampered and expired tokens are
	// deliberately indistinguishable to the caller.
	Verify(token string) (*domain.SessionClaims, error)
}
