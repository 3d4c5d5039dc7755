package database

import (
	"context"
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the services care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeLockNotAvailable    = "55P03"
	codeQueryCanceled       = "57014"
	codeDeadlockDetected    = "40P01"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == codeForeignKeyViolation
}

// IsRetryable reports failures caused by lock contention or timeouts.
// The caller may retry the whole operation; nothing here retries on its own.
func IsRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch pqCode(err) {
	case codeLockNotAvailable, codeQueryCanceled, codeDeadlockDetected:
		return true
	}
	return false
}
