// Package local is the offline backend: a single-device SQLite file used as a
// key-value store. Each collection lives as one JSON document under a fixed
// key and every mutation rewrites the whole document.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"expense-tracker/src/models"
)

// Fixed keys shared with the browser client's offline storage.
const (
	KeyUser         = "expense_tracker_user"
	KeyToken        = "expense_tracker_token"
	KeyTransactions = "expense_tracker_expenses"
)

type Store struct {
	db *sql.DB
	// location is used for stored dates that carry no zone.
	location *time.Location
	// mu serializes load-mutate-store cycles so concurrent writers never
	// overwrite each other's changes.
	mu sync.Mutex
}

type Option func(*Store)

// WithLocation sets the zone bare calendar dates are read in. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.location = loc
		}
	}
}

func Open(dbPath string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, location: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// get returns the raw value under key and false when the key is absent.
func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, models.NewStorageError("read "+key, err)
	}
	return []byte(value), true, nil
}

func (s *Store) put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value))
	if err != nil {
		return models.NewStorageError("write "+key, err)
	}
	return nil
}

func (s *Store) del(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return models.NewStorageError("delete "+key, err)
	}
	return nil
}
