// Package auth issues and resolves sessions for the two identity backends.
package auth

import (
	"context"
	"strings"
	"time"

	"expense-tracker/src/models"
	"expense-tracker/src/util"
)

// Session is created by Register or Login and ends with Logout.
type Session struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"-"`
}

type Provider interface {
	Register(ctx context.Context, name, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// CurrentSession reports false for a missing, expired or unknown token.
	CurrentSession(ctx context.Context, token string) (*Session, bool)
	Logout(ctx context.Context, token string) error
	User(ctx context.Context, userID string) (*models.User, error)
}

func validateRegistration(name, email, password string) error {
	switch {
	case strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "":
		return &models.ValidationError{Field: "fields", Reason: "are all required"}
	case !util.ValidateName(name):
		return &models.ValidationError{Field: "name", Reason: "must be at most 60 characters"}
	case !util.ValidateEmail(strings.TrimSpace(email)):
		return &models.ValidationError{Field: "email", Reason: "is not a valid address"}
	case !util.ValidatePassword(password):
		return &models.ValidationError{Field: "password", Reason: "must be between 6 characters and 72 bytes"}
	}
	return nil
}

func validateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return &models.ValidationError{Field: "fields", Reason: "are all required"}
	}
	return nil
}
