package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type CredentialID = uuid.UUID

// Roles carried in session claims.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
