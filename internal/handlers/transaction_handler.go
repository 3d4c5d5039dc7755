package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/ruralpay/corebank/internal/services"
	"github.com/shopspring/decimal"
)

// TransferRequest moves money between two accounts
type TransferRequest struct {
	FromAccount string          `json:"from_account" validate:"required,uuid" example:"0b6f6c1e-8a8e-4c55-9d3b-7b4f0c6f2e11"`
	ToAccount   string          `json:"to_account" validate:"required,uuid" example:"5d2e9f40-1c3b-4a7d-8e6f-2a1b0c9d8e7f"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"40.00"`
}

type TransactionHandler struct {
	ledger    *services.LedgerService
	validator *services.ValidationHelper
}

func NewTransactionHandler(ledger *services.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledger:    ledger,
		validator: services.NewValidationHelper(),
	}
}

// Transfer moves money atomically and returns the ledger entry
// @Summary Transfer
// @Description Debits the sender and credits the receiver in one database transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.ledger.Transfer(r.Context(), uuid.MustParse(req.FromAccount), uuid.MustParse(req.ToAccount), req.Amount)
	if err != nil {
		respondError(w, "transfer", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, record)
}
