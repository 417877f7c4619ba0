package service

import "leadapi/internal/domain"

type PasswordService interface {
	Hash(password string) (*domain.PasswordCredential, error)
	Verify(password string, cred *domain.PasswordCredential) bool
}
