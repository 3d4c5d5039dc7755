package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	"github.com/ruralpay/corebank/internal/config"
)

// InitDB opens the process-wide connection pool and verifies it is reachable
func InitDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Println("[DB] Database connection established")
	return db, nil
}

// InitDatabase initializes the pool and runs migrations. A failure here is fatal.
func InitDatabase(cfg config.DatabaseConfig) *sql.DB {
	db, err := InitDB(cfg)
	if err != nil {
		log.Fatalf("[DB] Failed to initialize database: %v", err)
	}

	if err := Migrate(context.Background(), db); err != nil {
		log.Fatalf("[DB] Failed to apply migrations: %v", err)
	}
	return db
}

// WithTx runs fn inside a single database transaction. The transaction is
// committed only when fn returns nil; otherwise it is rolled back and fn's
// error is returned unchanged.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
