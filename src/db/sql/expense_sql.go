package db

import (
	"context"
	"errors"
	"fmt"

	"expense-tracker/src/models"

	"github.com/jackc/pgx/v5"
)

func InsertTransaction(ctx context.Context, q Querier, t *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, amount, category, type, date, payment_mode, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	out := *t
	err := q.QueryRow(ctx, query,
		t.ID, t.UserID, t.Amount, t.Category, t.Type.String(), t.Date, string(t.PaymentMode), t.Note,
	).Scan(&out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return &out, nil
}

// GetTransactionsForUser normalizes the nullable type column of rows written
// before the column existed.
func GetTransactionsForUser(ctx context.Context, q Querier, userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, category, type, date, payment_mode, note, created_at
		FROM transactions
		WHERE user_id = $1
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var (
			t    models.Transaction
			typ  *string
			mode string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &typ, &t.Date, &mode, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		t.Type = models.NormalizeType(typ)
		if t.PaymentMode, err = models.ParsePaymentMode(mode); err != nil {
			t.PaymentMode = models.Cash
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return txns, nil
}

// GetTransactionOwner returns models.ErrNotFound when no row has the id.
func GetTransactionOwner(ctx context.Context, q Querier, id string) (string, error) {
	var owner string
	err := q.QueryRow(ctx, `SELECT user_id FROM transactions WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.ErrNotFound
		}
		return "", fmt.Errorf("query error: %w", err)
	}
	return owner, nil
}

func DeleteTransaction(ctx context.Context, q Querier, userID, id string) error {
	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
