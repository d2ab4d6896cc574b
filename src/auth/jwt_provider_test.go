package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"expense-tracker/src/models"
)

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.UserCredentials
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*models.UserCredentials)}
}

func (m *memoryUsers) CreateUser(_ context.Context, name, email string, hash []byte) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return nil, models.ErrDuplicateUser
	}
	u := models.User{ID: "id-" + email, Name: name, Email: email, CreatedAt: time.Now()}
	m.byEmail[email] = &models.UserCredentials{User: u, PasswordHash: hash}
	return &u, nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.UserCredentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byEmail[email]
	if !ok {
		return nil, models.ErrNoSuchAccount
	}
	return c, nil
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byEmail {
		if c.ID == id {
			u := c.User
			return &u, nil
		}
	}
	return nil, models.ErrNoSuchAccount
}

func newTestJWTProvider(opts ...JWTOption) *JWTProvider {
	opts = append([]JWTOption{WithBcryptCost(bcrypt.MinCost)}, opts...)
	return NewJWTProvider(newMemoryUsers(), "test-secret", opts...)
}

func TestJWTRegisterLoginAndResolve(t *testing.T) {
	p := newTestJWTProvider()
	ctx := context.Background()

	s, err := p.Register(ctx, "Asha", " Asha@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if s.Token == "" || s.User.Email != "asha@example.com" {
		t.Fatalf("unexpected session: %+v", s)
	}

	s, err = p.Login(ctx, "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	got, ok := p.CurrentSession(ctx, s.Token)
	if !ok {
		t.Fatalf("CurrentSession rejected a fresh token")
	}
	if got.User.ID != s.User.ID || got.User.Name != "Asha" {
		t.Fatalf("resolved session mismatch: %+v", got)
	}

	if _, ok := p.CurrentSession(ctx, "Bearer "+s.Token); !ok {
		t.Fatalf("CurrentSession should accept a Bearer prefix")
	}

	u, err := p.User(ctx, s.User.ID)
	if err != nil || u.Email != "asha@example.com" {
		t.Fatalf("User: %v %v", u, err)
	}
}

func TestJWTRegisterErrors(t *testing.T) {
	p := newTestJWTProvider()
	ctx := context.Background()

	if _, err := p.Register(ctx, "Asha", "asha@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := p.Register(ctx, "Asha", "ASHA@example.com", "secret1"); !errors.Is(err, models.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	var vErr *models.ValidationError
	if _, err := p.Register(ctx, "", "x@example.com", "secret1"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for missing name, got %v", err)
	}
	if _, err := p.Register(ctx, "X", "not-an-email", "secret1"); !errors.As(err, &vErr) || vErr.Field != "email" {
		t.Fatalf("expected email ValidationError, got %v", err)
	}
	if _, err := p.Register(ctx, "X", "x@example.com", "123"); !errors.As(err, &vErr) || vErr.Field != "password" {
		t.Fatalf("expected password ValidationError, got %v", err)
	}
	if _, err := p.Register(ctx, "X", "x@example.com", strings.Repeat("p", 73)); !errors.As(err, &vErr) || vErr.Field != "password" {
		t.Fatalf("expected password ValidationError for overlong password, got %v", err)
	}
}

func TestJWTLoginErrors(t *testing.T) {
	p := newTestJWTProvider()
	ctx := context.Background()
	p.Register(ctx, "Asha", "asha@example.com", "secret1")

	if _, err := p.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, models.ErrNoSuchAccount) {
		t.Fatalf("expected ErrNoSuchAccount, got %v", err)
	}
	if _, err := p.Login(ctx, "asha@example.com", "wrong-pass"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestJWTCurrentSessionRejectsBadTokens(t *testing.T) {
	p := newTestJWTProvider()
	ctx := context.Background()
	s, _ := p.Register(ctx, "Asha", "asha@example.com", "secret1")

	other := NewJWTProvider(newMemoryUsers(), "other-secret", WithBcryptCost(bcrypt.MinCost))
	cases := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"tampered":     s.Token[:len(s.Token)-2] + "xx",
		"wrong secret": mustToken(t, other),
	}
	for name, tok := range cases {
		if _, ok := p.CurrentSession(ctx, tok); ok {
			t.Errorf("%s: token accepted", name)
		}
	}
}

func TestJWTTokenExpires(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	p := newTestJWTProvider(WithTokenTTL(time.Hour), WithClock(clock))
	ctx := context.Background()

	s, err := p.Register(ctx, "Asha", "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !s.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("ExpiresAt = %v", s.ExpiresAt)
	}

	now = now.Add(2 * time.Hour)
	if _, ok := p.CurrentSession(ctx, s.Token); ok {
		t.Fatalf("expired token accepted")
	}
}

func TestJWTLogoutIsNoop(t *testing.T) {
	p := newTestJWTProvider()
	if err := p.Logout(context.Background(), "anything"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
}

func mustToken(t *testing.T, p *JWTProvider) string {
	t.Helper()
	s, err := p.Register(context.Background(), "Other", "other@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if strings.Count(s.Token, ".") != 2 {
		t.Fatalf("token is not a JWT: %q", s.Token)
	}
	return s.Token
}
