package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/ruralpay/corebank/internal/services"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest opens an account for an existing user
type CreateAccountRequest struct {
	UserID string `json:"user_id" validate:"required,uuid" example:"6f1c2a7e-3b4d-4e8f-9a0b-1c2d3e4f5a6b"`
}

// DepositRequest credits an account
type DepositRequest struct {
	AccountID string          `json:"account_id" validate:"required,uuid" example:"0b6f6c1e-8a8e-4c55-9d3b-7b4f0c6f2e11"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
}

type AccountHandler struct {
	ledger    *services.LedgerService
	validator *services.ValidationHelper
}

func NewAccountHandler(ledger *services.LedgerService) *AccountHandler {
	return &AccountHandler{
		ledger:    ledger,
		validator: services.NewValidationHelper(),
	}
}

// CreateAccount opens a zero-balance account
// @Summary Create account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Owner"
// @Success 200 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.ledger.CreateAccount(r.Context(), uuid.MustParse(req.UserID))
	if err != nil {
		respondError(w, "create account", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, account)
}

// ListAccounts returns all accounts owned by a user
// @Summary List user accounts
// @Tags Accounts
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	accounts, err := h.ledger.ListAccounts(r.Context(), userID)
	if err != nil {
		respondError(w, "list accounts", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, accounts)
}

// History returns the ledger entries of an account, newest first
// @Summary Account transactions
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /accounts/{id}/transactions [get]
func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	history, err := h.ledger.History(r.Context(), accountID)
	if err != nil {
		respondError(w, "transaction history", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, history)
}

// AddMoney deposits into an account
// @Summary Deposit
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body DepositRequest true "Deposit"
// @Success 200 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /addmoney [post]
func (h *AccountHandler) AddMoney(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.ledger.Deposit(r.Context(), uuid.MustParse(req.AccountID), req.Amount)
	if err != nil {
		respondError(w, "deposit", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, account)
}
