package domain

import "time"

// SessionClaims is the decoded content of a session token. Sessions are
// never stored server-side; the signed token in the cookie is the only
// record of them.
type SessionClaims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
