package impl

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"leadapi/internal/domain"
	"leadapi/internal/dto"
	"leadapi/internal/observability/metrics"
	"leadapi/internal/service"
	"leadapi/internal/store"
)

type AuthConfig struct {
	// SuperuserUsername/Password are the externally configured identity
	// checked before any stored user. Matching is exact, not lowercased.
	SuperuserUsername string
	SuperuserPassword string
	SessionTTL        time.Duration
}

type AuthServiceImpl struct {
	cfg      AuthConfig
	store    *store.Store
	pw       service.PasswordService
	tokens   service.TokenService
	verifier service.BotVerifier
}

func NewAuthServiceImpl(cfg AuthConfig, st *store.Store, pw service.PasswordService, tokens service.TokenService, verifier service.BotVerifier) *AuthServiceImpl {
	return &AuthServiceImpl{cfg: cfg, store: st, pw: pw, tokens: tokens, verifier: verifier}
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest, clientIP string) (string, error) {
	result := "success"
	defer func() {
		metrics.LoginsTotal.WithLabelValues(result).Inc()
	}()

	if !a.verifier.Verify(ctx, r.CFToken, clientIP) {
		result = "turnstile_failed"
		return "", domain.ErrTurnstileFailed
	}
	if r.Username == "" || r.Password == "" {
		result = "failure"
		return "", domain.ErrMissingCredentials
	}

	role, err := a.verifyCredentials(ctx, r.Username, r.Password)
	if err != nil {
		result = "failure"
		return "", err
	}

	token, err := a.tokens.Issue(strings.ToLower(r.Username), role, a.cfg.SessionTTL)
	if err != nil {
		result = "failure"
		return "", err
	}

	slog.Info("admin login", "username", strings.ToLower(r.Username), "role", role)
	return token, nil
}

func (a *AuthServiceImpl) verifyCredentials(ctx context.Context, username, password string) (string, error) {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.SuperuserUsername))
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.SuperuserPassword))
	if userMatch == 1 && passMatch == 1 {
		return domain.RoleAdmin, nil
	}

	user, err := a.store.Users().GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	cred, err := a.store.Credentials().GetPasswordByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if !a.pw.Verify(password, cred) {
		return "", domain.ErrInvalidCredentials
	}
	return domain.RoleUser, nil
}

func (a *AuthServiceImpl) CreateUser(ctx context.Context, username, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return domain.ErrInvalidInput
	}

	cred, err := a.pw.Hash(password)
	if err != nil {
		return err
	}

	err = a.store.WithTx(ctx, func(tx *store.Store) error {
		now := time.Now().UTC()
		u := &domain.User{
			Username:  username,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		cred.UserID = u.ID
		return tx.Credentials().UpsertPassword(ctx, cred)
	})
	if errors.Is(err, store.ErrDuplicate) {
		return domain.ErrUserExists
	}
	return err
}

// DeleteUser is idempotent: deleting an unknown username succeeds.
func (a *AuthServiceImpl) DeleteUser(ctx context.Context, username string) error {
	return a.store.Users().DeleteByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
}

func (a *AuthServiceImpl) ListUsers(ctx context.Context) ([]string, error) {
	return a.store.Users().ListUsernames(ctx)
}
