package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"expense-tracker/src/db/local"
	"expense-tracker/src/models"
	"expense-tracker/src/util"
)

// LocalProvider manages the single profile of an offline device. At most one
// session exists at a time; its token is kept next to the profile.
type LocalProvider struct {
	store *local.Store
	cost  int
	now   func() time.Time
}

func NewLocalProvider(s *local.Store, bcryptCost int) *LocalProvider {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &LocalProvider{store: s, cost: bcryptCost, now: time.Now}
}

// Register replaces the device profile unless it is already registered to
// the same email.
func (p *LocalProvider) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}
	email = util.NormalizeEmail(email)

	existing, ok, err := p.store.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	if ok && strings.EqualFold(existing.Email, email) {
		return nil, models.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	profile := local.Profile{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    p.now().UTC(),
	}
	if err := p.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	log.Printf("INFO: Registered local profile - Email: %s, ID: %s", profile.Email, profile.ID)
	return p.startSession(ctx, profile)
}

func (p *LocalProvider) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := validateLogin(email, password); err != nil {
		return nil, err
	}
	profile, ok, err := p.store.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrNoSuchAccount
	}
	if !strings.EqualFold(profile.Email, util.NormalizeEmail(email)) {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(profile.PasswordHash, []byte(password)); err != nil {
		log.Printf("ERROR: Invalid password attempt for local profile %s", profile.Email)
		return nil, models.ErrInvalidCredentials
	}
	return p.startSession(ctx, *profile)
}

func (p *LocalProvider) startSession(ctx context.Context, profile local.Profile) (*Session, error) {
	token := uuid.NewString()
	if err := p.store.SetSessionToken(ctx, token); err != nil {
		return nil, err
	}
	return &Session{Token: token, User: profile.User()}, nil
}

func (p *LocalProvider) CurrentSession(ctx context.Context, token string) (*Session, bool) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, false
	}
	stored, ok, err := p.store.SessionToken(ctx)
	if err != nil {
		log.Printf("ERROR: Failed to read local session: %v", err)
		return nil, false
	}
	if !ok || subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return nil, false
	}
	profile, ok, err := p.store.LoadProfile(ctx)
	if err != nil || !ok {
		return nil, false
	}
	return &Session{Token: token, User: profile.User()}, true
}

// Logout clears the session marker only when token is the active one.
func (p *LocalProvider) Logout(ctx context.Context, token string) error {
	if _, ok := p.CurrentSession(ctx, token); !ok {
		return nil
	}
	return p.store.ClearSessionToken(ctx)
}

func (p *LocalProvider) User(ctx context.Context, userID string) (*models.User, error) {
	profile, ok, err := p.store.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || profile.ID != userID {
		return nil, models.ErrNoSuchAccount
	}
	u := profile.User()
	return &u, nil
}
