// Package store defines the persistence contracts shared by the Postgres and
// local backends.
package store

import (
	"context"

	"expense-tracker/src/models"
)

// TransactionStore is the only writer of transaction state.
type TransactionStore interface {
	// Add assigns ID and CreatedAt and persists the draft.
	Add(ctx context.Context, userID string, draft models.TransactionDraft) (*models.Transaction, error)
	// ListAll returns every transaction owned by userID in no particular order.
	ListAll(ctx context.Context, userID string) ([]models.Transaction, error)
	// DeleteByID returns models.ErrNotFound when the id does not exist and
	// models.ErrUnauthorized when it belongs to another user.
	DeleteByID(ctx context.Context, userID, id string) error
}

// UserStore backs the token-issuing identity provider.
type UserStore interface {
	CreateUser(ctx context.Context, name, email string, passwordHash []byte) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.UserCredentials, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
