package services

import (
	"errors"

	"github.com/ruralpay/corebank/internal/database"
)

// Domain errors. Handlers map each one to a distinct client-facing status.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidHash        = errors.New("invalid password hash")
	ErrInvalidAmount      = errors.New("amount must be positive with at most two decimal places")
	ErrUnknownOwner       = errors.New("owner does not exist")
)

// PersistenceError wraps a storage failure that is not a domain condition:
// lost connections, lock timeouts, unclassified constraint violations.
type PersistenceError struct {
	Op        string
	Err       error
	Retryable bool
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err, Retryable: database.IsRetryable(err)}
}

// IsPersistence reports whether err is an infrastructure failure
func IsPersistence(err error) bool {
	var pErr *PersistenceError
	return errors.As(err, &pErr)
}

// IsRetryable reports whether the caller may retry the operation
func IsRetryable(err error) bool {
	var pErr *PersistenceError
	return errors.As(err, &pErr) && pErr.Retryable
}
