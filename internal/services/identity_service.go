package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/ruralpay/corebank/internal/database"
	"github.com/ruralpay/corebank/internal/models"
)

// IdentityService owns the user lifecycle: registration, lookup, deletion and
// password login.
type IdentityService struct {
	db     *sql.DB
	hasher *PasswordHasher
}

func NewIdentityService(db *sql.DB, hasher *PasswordHasher) *IdentityService {
	return &IdentityService{db: db, hasher: hasher}
}

// Register hashes the password and stores a new user under a fresh id.
func (s *IdentityService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash`,
		uuid.New(), username, hashedPassword,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("username %q: %w", username, ErrConflict)
		}
		return nil, persistenceError("register user", err)
	}

	log.Printf("[AUTH] User created successfully - ID: %s, Username: %s", user.ID, user.Username)
	return &user, nil
}

func (s *IdentityService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username
		FROM users
		WHERE id = $1`, id,
	).Scan(&user.ID, &user.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, persistenceError("get user", err)
	}
	return &user, nil
}

// DeleteUser removes the user's accounts and then the user row in one
// transaction. It returns the number of user rows removed; deleting an absent
// user is not an error.
func (s *IdentityService) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE user_id = $1`, id); err != nil {
			return persistenceError("delete accounts", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return persistenceError("delete user", err)
		}

		deleted, err = result.RowsAffected()
		if err != nil {
			return persistenceError("delete user", err)
		}
		return nil
	})
	if err != nil {
		if IsPersistence(err) {
			return 0, err
		}
		return 0, persistenceError("delete user", err)
	}

	if deleted > 0 {
		log.Printf("[AUTH] User %s deleted", id)
	}
	return deleted, nil
}

// Login verifies the password against the stored hash. Stored state is never
// modified.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash
		FROM users
		WHERE username = $1`, username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, persistenceError("login", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		log.Printf("[AUTH] Stored hash for user %s could not be parsed", user.ID)
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	log.Printf("[AUTH] Password verified for user ID: %s", user.ID)
	return &user, nil
}
