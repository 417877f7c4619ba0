package service

import (
	"context"

	"leadapi/internal/dto"
)

// AuthService covers admin panel authentication and account management.
type AuthService interface {
	// Login verifies the bot challenge and the credentials, then returns a
	// signed session token ready to be set as a cookie.
	Login(ctx context.Context, r dto.LoginRequest, clientIP string) (string, error)
	CreateUser(ctx context.Context, username, password string) error
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]string, error)
}

// BotVerifier validates a client-supplied challenge proof token.
type BotVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) bool
}
