package db

import (
	"context"
	"errors"
	"fmt"

	"expense-tracker/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func CreateUser(ctx context.Context, q Querier, id, name, email string, passwordHash []byte) (*models.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, created_at
	`
	var u models.User
	err := q.QueryRow(ctx, query, id, name, email, string(passwordHash)).
		Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, models.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func GetUserByEmail(ctx context.Context, q Querier, email string) (*models.UserCredentials, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	var c models.UserCredentials
	var hash string
	err := q.QueryRow(ctx, query, email).
		Scan(&c.ID, &c.Name, &c.Email, &hash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNoSuchAccount
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	c.PasswordHash = []byte(hash)
	return &c, nil
}

func GetUserByID(ctx context.Context, q Querier, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1
	`
	var u models.User
	err := q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNoSuchAccount
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &u, nil
}
