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
	"github.com/shopspring/decimal"
)

// amountScale matches the NUMERIC(20,2) balance and amount columns.
const amountScale = 2

// validAmount accepts positive amounts the columns can store without rounding.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(amountScale))
}

// LedgerService manages account balances and records transfers.
//
// Balances are never cached in process: every read goes to the database, and
// concurrent mutations of the same account serialize on its row lock.
type LedgerService struct {
	db    *sql.DB
	audit *AuditLogger
}

func NewLedgerService(db *sql.DB, audit *AuditLogger) *LedgerService {
	if audit == nil {
		audit = NewAuditLogger()
	}
	return &LedgerService{db: db, audit: audit}
}

// CreateAccount opens a zero-balance account for userID.
func (s *LedgerService) CreateAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (id, user_id, balance)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, balance`,
		uuid.New(), userID, decimal.Zero,
	).Scan(&account.ID, &account.UserID, &account.Balance)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, persistenceError("create account", fmt.Errorf("%w: %v", ErrUnknownOwner, err))
		}
		return nil, persistenceError("create account", err)
	}

	log.Printf("[LEDGER] Account %s created for user %s", account.ID, userID)
	return &account, nil
}

// ListAccounts returns every account owned by userID. The result is empty, not
// nil, when the user has no accounts.
func (s *LedgerService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, balance
		FROM accounts
		WHERE user_id = $1`, userID)
	if err != nil {
		return nil, persistenceError("list accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.UserID, &account.Balance); err != nil {
			return nil, persistenceError("list accounts", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list accounts", err)
	}
	return accounts, nil
}

func (s *LedgerService) GetAccount(ctx context.Context, accountID uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, balance
		FROM accounts
		WHERE id = $1`, accountID,
	).Scan(&account.ID, &account.UserID, &account.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return nil, persistenceError("get account", err)
	}
	return &account, nil
}

// Deposit adds amount to the account balance and returns the updated account.
func (s *LedgerService) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*models.Account, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	var account models.Account
	err := s.db.QueryRowContext(ctx, `
		UPDATE accounts
		SET balance = balance + $1
		WHERE id = $2
		RETURNING id, user_id, balance`,
		amount, accountID,
	).Scan(&account.ID, &account.UserID, &account.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return nil, persistenceError("deposit", err)
	}

	s.audit.LogDeposit(accountID, amount)
	return &account, nil
}

// Transfer moves amount from one account to another and appends a ledger
// entry, all inside one database transaction.
//
// Both account rows are locked FOR UPDATE in ascending id order before the
// balance check, so two transfers touching the same accounts serialize instead
// of racing, and opposite-direction transfers cannot deadlock. A transfer to
// the same account locks the row once; it leaves the balance unchanged but is
// still recorded.
func (s *LedgerService) Transfer(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	var record *models.Transaction
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balances, err := s.lockAccounts(ctx, tx, fromAccountID, toAccountID)
		if err != nil {
			return err
		}

		if balances[fromAccountID].LessThan(amount) {
			return ErrInsufficientFunds
		}

		if err := s.adjustBalance(ctx, tx, fromAccountID, amount.Neg()); err != nil {
			return err
		}
		if err := s.adjustBalance(ctx, tx, toAccountID, amount); err != nil {
			return err
		}

		record, err = s.insertEntry(ctx, tx, fromAccountID, toAccountID, amount)
		return err
	})
	if err != nil {
		s.audit.LogTransferFailure(fromAccountID, toAccountID, amount, err)
		if errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrNotFound) || IsPersistence(err) {
			return nil, err
		}
		return nil, persistenceError("transfer", err)
	}

	s.audit.LogTransfer(record.ID, fromAccountID, toAccountID, amount)
	return record, nil
}

// History returns every ledger entry the account took part in, newest first.
func (s *LedgerService) History(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, from_account, to_account, amount, created_at
		FROM transactions
		WHERE from_account = $1 OR to_account = $1
		ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, persistenceError("transaction history", err)
	}
	defer rows.Close()

	history := []models.Transaction{}
	for rows.Next() {
		var entry models.Transaction
		var createdAt sql.NullTime
		if err := rows.Scan(&entry.ID, &entry.FromAccount, &entry.ToAccount, &entry.Amount, &createdAt); err != nil {
			return nil, persistenceError("transaction history", err)
		}
		if createdAt.Valid {
			entry.CreatedAt = &createdAt.Time
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("transaction history", err)
	}
	return history, nil
}

// lockAccounts takes row locks on both accounts in a fixed global order and
// returns their balances.
func (s *LedgerService) lockAccounts(ctx context.Context, tx *sql.Tx, fromAccountID, toAccountID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	order := []uuid.UUID{fromAccountID}
	if toAccountID != fromAccountID {
		order = append(order, toAccountID)
		if toAccountID.String() < fromAccountID.String() {
			order[0], order[1] = toAccountID, fromAccountID
		}
	}

	balances := make(map[uuid.UUID]decimal.Decimal, len(order))
	for _, id := range order {
		balance, err := s.lockAccount(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		balances[id] = balance
	}
	return balances, nil
}

func (s *LedgerService) lockAccount(ctx context.Context, tx *sql.Tx, accountID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRowContext(ctx, `
		SELECT balance
		FROM accounts
		WHERE id = $1
		FOR UPDATE`, accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return balance, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return balance, persistenceError("lock account", err)
	}
	return balance, nil
}

func (s *LedgerService) adjustBalance(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, delta decimal.Decimal) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = balance + $1
		WHERE id = $2`, delta, accountID)
	if err != nil {
		return persistenceError("update balance", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistenceError("update balance", err)
	}
	if rowsAffected != 1 {
		return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	return nil
}

func (s *LedgerService) insertEntry(ctx context.Context, tx *sql.Tx, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error) {
	entry := models.Transaction{ID: uuid.New()}
	var createdAt sql.NullTime
	err := tx.QueryRowContext(ctx, `
		INSERT INTO transactions (id, from_account, to_account, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, from_account, to_account, amount, created_at`,
		entry.ID, fromAccountID, toAccountID, amount,
	).Scan(&entry.ID, &entry.FromAccount, &entry.ToAccount, &entry.Amount, &createdAt)
	if err != nil {
		return nil, persistenceError("insert transaction", err)
	}
	if createdAt.Valid {
		entry.CreatedAt = &createdAt.Time
	}
	return &entry, nil
}
