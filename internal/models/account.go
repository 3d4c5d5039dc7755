package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account holds a balance owned by a single user
// @Description Bank account
type Account struct {
	ID      uuid.UUID       `json:"id" db:"id" example:"0b6f6c1e-8a8e-4c55-9d3b-7b4f0c6f2e11"`          // Account ID
	UserID  uuid.UUID       `json:"user_id" db:"user_id" example:"6f1c2a7e-3b4d-4e8f-9a0b-1c2d3e4f5a6b"` // Owner
	Balance decimal.Decimal `json:"balance" db:"balance" swaggertype:"string" example:"100.00"`         // Exact decimal balance
}
