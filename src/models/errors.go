package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrUnauthorized       = errors.New("not authorized")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSuchAccount      = errors.New("user does not exist")
	ErrAuth               = errors.New("authentication required")
	ErrStorage            = errors.New("storage failure")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// StorageError wraps a driver or file failure so callers can match it with
// errors.Is(err, ErrStorage) without seeing the underlying driver type.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
