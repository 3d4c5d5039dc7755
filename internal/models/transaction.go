package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger entry recording one completed transfer
// @Description Ledger entry
type Transaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	FromAccount uuid.UUID       `json:"from_account" db:"from_account"`
	ToAccount   uuid.UUID       `json:"to_account" db:"to_account"`
	Amount      decimal.Decimal `json:"amount" db:"amount" swaggertype:"string" example:"40.00"`
	CreatedAt   *time.Time      `json:"created_at" db:"created_at"`
}
