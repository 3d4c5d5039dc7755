package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE accounts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = WithTx(ctx, db, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "UPDATE accounts SET balance = 0")
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns fn error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		sentinel := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err = WithTx(ctx, db, func(tx *sql.Tx) error { return sentinel })
		assert.ErrorIs(t, err, sentinel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		called := false
		err = WithTx(ctx, db, func(tx *sql.Tx) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "begin transaction")
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("connection lost"))

		err = WithTx(ctx, db, func(tx *sql.Tx) error { return nil })
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "commit transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("applies every statement", func(t *testing.T) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS accounts").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS transactions .*created_at +TIMESTAMPTZ +NOT NULL").WillReturnResult(sqlmock.NewResult(0, 0))
		for i := 0; i < len(schema)-3; i++ {
			mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		assert.NoError(t, Migrate(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops on first failure", func(t *testing.T) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("permission denied"))

		err := Migrate(context.Background(), db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "migration failed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSchemaTimestamps(t *testing.T) {
	timestamp := regexp.MustCompile(`created_at\s+(\w+)`)
	for _, stmt := range schema {
		for _, m := range timestamp.FindAllStringSubmatch(stmt, -1) {
			if m[1] == "DESC" {
				continue
			}
			assert.Equal(t, "TIMESTAMPTZ", m[1], stmt)
		}
	}
}

func TestErrorClassification(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	fk := &pq.Error{Code: "23503"}
	lock := &pq.Error{Code: "55P03"}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert user: %w", unique)))
	assert.False(t, IsUniqueViolation(fk))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))

	assert.True(t, IsRetryable(lock))
	assert.True(t, IsRetryable(&pq.Error{Code: "40P01"}))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(unique))
	assert.False(t, IsRetryable(sql.ErrConnDone))
}
