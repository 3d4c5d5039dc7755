package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := persistenceError("list accounts", cause)

	assert.True(t, IsPersistence(err))
	assert.True(t, IsPersistence(fmt.Errorf("handler: %w", err)))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list accounts: connection refused", err.Error())
	assert.False(t, IsRetryable(err))

	assert.True(t, IsRetryable(persistenceError("lock account", &pq.Error{Code: "55P03"})))
	assert.False(t, IsPersistence(ErrNotFound))
	assert.False(t, IsRetryable(ErrInsufficientFunds))
}
