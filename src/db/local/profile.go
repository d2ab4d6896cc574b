package local

import (
	"context"
	"encoding/json"
	"time"

	"expense-tracker/src/models"
)

// Profile is the single account registered on this device.
type Profile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p Profile) User() models.User {
	return models.User{ID: p.ID, Name: p.Name, Email: p.Email, CreatedAt: p.CreatedAt}
}

// LoadProfile returns false when nobody has registered on this device.
func (s *Store) LoadProfile(ctx context.Context) (*Profile, bool, error) {
	raw, ok, err := s.get(ctx, KeyUser)
	if err != nil || !ok {
		return nil, false, err
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, models.NewStorageError("decode "+KeyUser, err)
	}
	return &p, true, nil
}

func (s *Store) SaveProfile(ctx context.Context, p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return models.NewStorageError("encode "+KeyUser, err)
	}
	return s.put(ctx, KeyUser, raw)
}

// SessionToken returns the active session marker, if any.
func (s *Store) SessionToken(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.get(ctx, KeyToken)
	if err != nil || !ok {
		return "", false, err
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		// Older clients stored the bare marker string.
		token = string(raw)
	}
	return token, token != "", nil
}

func (s *Store) SetSessionToken(ctx context.Context, token string) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return models.NewStorageError("encode "+KeyToken, err)
	}
	return s.put(ctx, KeyToken, raw)
}

// ClearSessionToken ends the session and keeps the profile and transactions.
func (s *Store) ClearSessionToken(ctx context.Context) error {
	return s.del(ctx, KeyToken)
}
