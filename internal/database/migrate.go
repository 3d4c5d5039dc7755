package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT        NOT NULL UNIQUE,
		password_hash TEXT        NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id         UUID          PRIMARY KEY,
		user_id    UUID          NOT NULL REFERENCES users(id),
		balance    NUMERIC(20,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id           UUID          PRIMARY KEY,
		from_account UUID          NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		to_account   UUID          NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		amount       NUMERIC(20,2) NOT NULL,
		created_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_from_account ON transactions(from_account)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_to_account ON transactions(to_account)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC)`,
}

// Migrate creates tables and indexes idempotently.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	log.Println("[DB] Migrations completed")
	return nil
}
