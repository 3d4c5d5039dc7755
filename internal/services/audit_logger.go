package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuditEvent struct {
	Timestamp     time.Time        `json:"timestamp"`
	EventType     string           `json:"event_type"`
	TransactionID string           `json:"transaction_id,omitempty"`
	AccountID     string           `json:"account_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Status        string           `json:"status"`
	Details       any              `json:"details,omitempty"`
}

// AuditLogger writes one JSON line per money movement.
type AuditLogger struct {
	logf func(format string, args ...any)
}

func NewAuditLogger() *AuditLogger {
	return &AuditLogger{logf: log.Printf}
}

func (a *AuditLogger) LogTransfer(transactionID, fromAccount, toAccount uuid.UUID, amount decimal.Decimal) {
	a.log(AuditEvent{
		EventType:     "TRANSFER",
		TransactionID: transactionID.String(),
		AccountID:     fromAccount.String(),
		Amount:        &amount,
		Status:        "SUCCESS",
		Details: map[string]string{
			"from_account": fromAccount.String(),
			"to_account":   toAccount.String(),
		},
	})
}

func (a *AuditLogger) LogTransferFailure(fromAccount, toAccount uuid.UUID, amount decimal.Decimal, err error) {
	a.log(AuditEvent{
		EventType: "TRANSFER",
		AccountID: fromAccount.String(),
		Amount:    &amount,
		Status:    "FAILED",
		Details: map[string]string{
			"from_account": fromAccount.String(),
			"to_account":   toAccount.String(),
			"error":        err.Error(),
		},
	})
}

func (a *AuditLogger) LogDeposit(accountID uuid.UUID, amount decimal.Decimal) {
	a.log(AuditEvent{
		EventType: "DEPOSIT",
		AccountID: accountID.String(),
		Amount:    &amount,
		Status:    "SUCCESS",
	})
}

func (a *AuditLogger) log(event AuditEvent) {
	event.Timestamp = time.Now().UTC()
	data, _ := json.Marshal(event)
	a.logf("AUDIT: %s", string(data))
}
