package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"leadapi/internal/domain"
	"leadapi/internal/dto"
)

func newAuthService(t *testing.T, verifier *stubVerifier) *AuthServiceImpl {
	t.Helper()
	st := setupStore(t)
	return NewAuthServiceImpl(AuthConfig{
		SuperuserUsername: "root",
		SuperuserPassword: "super-secret",
		SessionTTL:        12 * time.Hour,
	}, st, NewPasswordServiceArgon2id(), newTokenService(), verifier)
}

func TestLoginSuperuser(t *testing.T) {
	auth := newAuthService(t, &stubVerifier{ok: true})

	token, err := auth.Login(context.Background(), dto.LoginRequest{
		Username: "root",
		Password: "super-secret",
		CFToken:  "tok",
	}, "203.0.113.7")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := newTokenService().Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Subject != "root" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginTurnstileRejected(t *testing.T) {
	auth := newAuthService(t, &stubVerifier{ok: false})

	_, err := auth.Login(context.Background(), dto.LoginRequest{
		Username: "root",
		Password: "super-secret",
		CFToken:  "rejected",
	}, "203.0.113.7")
	if !errors.Is(err, domain.ErrTurnstileFailed) {
		t.Fatalf("expected ErrTurnstileFailed, got %v", err)
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	auth := newAuthService(t, &stubVerifier{ok: true})

	for _, r := range []dto.LoginRequest{
		{Username: "", Password: "x"},
		{Username: "x", Password: ""},
	} {
		if _, err := auth.Login(context.Background(), r, ""); !errors.Is(err, domain.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials for %+v, got %v", r, err)
		}
	}
}

func TestLoginStoredUser(t *testing.T) {
	auth := newAuthService(t, &stubVerifier{ok: true})
	ctx := context.Background()

	if err := auth.CreateUser(ctx, "Alice", "wonderland-1"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Lookup is case-insensitive; the stored row is lowercase.
	token, err := auth.Login(ctx, dto.LoginRequest{Username: "ALICE", Password: "wonderland-1"}, "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := newTokenService().Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong"}, ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "x"}, ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	auth := newAuthService(t, &stubVerifier{ok: true})
	ctx := context.Background()

	if err := auth.CreateUser(ctx, "bob", "builder-123"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := auth.CreateUser(ctx, "BOB", "other-pass"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists regardless of casing, got %v", err)
	}
}

func TestCreateUserInvalidInput(t *testing.T) {
	auth := newAuthService(t, &stubVerifier{ok: true})
	ctx := context.Background()

	if err := auth.CreateUser(ctx, "", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if err := auth.CreateUser(ctx, "user", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestDeleteUserIdempotent(t *testing.T) {
	auth := newAuthService(t, &stubVerifier{ok: true})
	ctx := context.Background()

	if err := auth.CreateUser(ctx, "carol", "pass-123"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := auth.DeleteUser(ctx, "Carol"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if err := auth.DeleteUser(ctx, "carol"); err != nil {
		t.Fatalf("expected repeated delete to succeed, got %v", err)
	}
	if _, err := auth.Login(ctx, dto.LoginRequest{Username: "carol", Password: "pass-123"}, ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected deleted user to be unable to log in, got %v", err)
	}
}

func TestListUsersSorted(t *testing.T) {
	auth := newAuthService(t, &stubVerifier{ok: true})
	ctx := context.Background()

	for _, name := range []string{"zoe", "anna", "mike"} {
		if err := auth.CreateUser(ctx, name, "pass-123"); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	names, err := auth.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"anna", "mike", "zoe"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
