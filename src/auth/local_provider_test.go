package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"expense-tracker/src/db/local"
	"expense-tracker/src/models"
)

func newTestLocalProvider(t *testing.T) *LocalProvider {
	t.Helper()
	s, err := local.Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("local.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewLocalProvider(s, bcrypt.MinCost)
}

func TestLocalRegisterLoginLogout(t *testing.T) {
	p := newTestLocalProvider(t)
	ctx := context.Background()

	s, err := p.Register(ctx, "Asha", "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := p.CurrentSession(ctx, s.Token); !ok {
		t.Fatalf("session from Register not active")
	}

	if err := p.Logout(ctx, s.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := p.CurrentSession(ctx, s.Token); ok {
		t.Fatalf("session still active after Logout")
	}

	s2, err := p.Login(ctx, "ASHA@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login after logout: %v", err)
	}
	if s2.User.ID != s.User.ID {
		t.Fatalf("logout must keep the profile: %s != %s", s2.User.ID, s.User.ID)
	}

	u, err := p.User(ctx, s2.User.ID)
	if err != nil || u.Name != "Asha" {
		t.Fatalf("User: %v %v", u, err)
	}
}

func TestLocalLoginErrors(t *testing.T) {
	p := newTestLocalProvider(t)
	ctx := context.Background()

	if _, err := p.Login(ctx, "asha@example.com", "secret1"); !errors.Is(err, models.ErrNoSuchAccount) {
		t.Fatalf("expected ErrNoSuchAccount on empty device, got %v", err)
	}

	p.Register(ctx, "Asha", "asha@example.com", "secret1")
	if _, err := p.Login(ctx, "other@example.com", "secret1"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for other email, got %v", err)
	}
	if _, err := p.Login(ctx, "asha@example.com", "wrong-pass"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
}

func TestLocalRegisterDuplicate(t *testing.T) {
	p := newTestLocalProvider(t)
	ctx := context.Background()
	p.Register(ctx, "Asha", "asha@example.com", "secret1")

	if _, err := p.Register(ctx, "Asha", "asha@example.com", "secret2"); !errors.Is(err, models.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestLocalNewLoginReplacesSession(t *testing.T) {
	p := newTestLocalProvider(t)
	ctx := context.Background()
	first, _ := p.Register(ctx, "Asha", "asha@example.com", "secret1")
	second, err := p.Login(ctx, "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, ok := p.CurrentSession(ctx, first.Token); ok {
		t.Fatalf("old token still valid")
	}
	if _, ok := p.CurrentSession(ctx, second.Token); !ok {
		t.Fatalf("new token not valid")
	}
	// Logging out with a stale token leaves the active session alone.
	p.Logout(ctx, first.Token)
	if _, ok := p.CurrentSession(ctx, second.Token); !ok {
		t.Fatalf("stale logout ended the active session")
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if _, err := UserIDFromContext(ctx); err == nil {
		t.Fatalf("expected error without session")
	}
	ctx = WithSession(ctx, &Session{Token: "t", User: models.User{ID: "u1"}})
	id, err := UserIDFromContext(ctx)
	if err != nil || id != "u1" {
		t.Fatalf("UserIDFromContext = %q, %v", id, err)
	}
}
