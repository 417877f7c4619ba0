package domain

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidEmail       = errors.New("invalid email address")

	ErrTurnstileFailed = errors.New("turnstile verification failed")
	ErrPhoneInvalid    = errors.New("invalid phone number")
	ErrCityRequired    = errors.New("city is required")
	ErrSummaryShort    = errors.New("summary too short")
)
