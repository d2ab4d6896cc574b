package db

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"expense-tracker/src/models"
	sqldb "expense-tracker/src/db/sql"
)

// PostgresStore implements store.TransactionStore and store.UserStore.
type PostgresStore struct {
	q sqldb.Querier
}

// NewPostgresStore takes a *pgxpool.Pool in production.
func NewPostgresStore(q sqldb.Querier) *PostgresStore {
	return &PostgresStore{q: q}
}

// wrap leaves domain errors alone and marks everything else as a storage failure.
func wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrDuplicateUser),
		errors.Is(err, models.ErrNoSuchAccount):
		return err
	}
	log.Printf("ERROR: %s: %v", op, err)
	return models.NewStorageError(op, err)
}

func (s *PostgresStore) Add(ctx context.Context, userID string, draft models.TransactionDraft) (*models.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	mode := draft.PaymentMode
	if mode == "" {
		mode = models.Cash
	}
	t, err := sqldb.InsertTransaction(ctx, s.q, &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      draft.Amount,
		Category:    draft.Category,
		Type:        draft.Type,
		Date:        draft.Date,
		PaymentMode: mode,
		Note:        draft.Note,
	})
	if err != nil {
		return nil, wrap("insert transaction", err)
	}
	return t, nil
}

func (s *PostgresStore) ListAll(ctx context.Context, userID string) ([]models.Transaction, error) {
	txns, err := sqldb.GetTransactionsForUser(ctx, s.q, userID)
	if err != nil {
		return nil, wrap("list transactions", err)
	}
	return txns, nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, userID, id string) error {
	owner, err := sqldb.GetTransactionOwner(ctx, s.q, id)
	if err != nil {
		return wrap("lookup transaction owner", err)
	}
	if owner != userID {
		log.Printf("ERROR: user %s tried to delete transaction %s owned by %s", userID, id, owner)
		return models.ErrUnauthorized
	}
	return wrap("delete transaction", sqldb.DeleteTransaction(ctx, s.q, userID, id))
}

func (s *PostgresStore) CreateUser(ctx context.Context, name, email string, passwordHash []byte) (*models.User, error) {
	u, err := sqldb.CreateUser(ctx, s.q, uuid.NewString(), name, email, passwordHash)
	if err != nil {
		return nil, wrap("create user", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.UserCredentials, error) {
	c, err := sqldb.GetUserByEmail(ctx, s.q, email)
	if err != nil {
		return nil, wrap("get user by email", err)
	}
	return c, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := sqldb.GetUserByID(ctx, s.q, id)
	if err != nil {
		return nil, wrap("get user by id", err)
	}
	return u, nil
}
