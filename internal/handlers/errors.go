package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ruralpay/corebank/internal/services"
)

// respondError maps a service error onto the client-facing status and code.
// Infrastructure failures are logged and reported without detail.
func respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		services.SendError(w, http.StatusNotFound, services.CodeNotFound, "Resource not found")
	case errors.Is(err, services.ErrConflict):
		services.SendError(w, http.StatusBadRequest, services.CodeConflict, "Username already exists")
	case errors.Is(err, services.ErrInsufficientFunds):
		services.SendError(w, http.StatusBadRequest, services.CodeInsufficientFunds, "Insufficient funds")
	case errors.Is(err, services.ErrInvalidAmount):
		services.SendError(w, http.StatusBadRequest, services.CodeInvalidAmount, "Amount must be greater than zero with at most two decimal places")
	case errors.Is(err, services.ErrUnknownOwner):
		services.SendError(w, http.StatusBadRequest, services.CodeUnknownOwner, "User does not exist")
	case errors.Is(err, services.ErrInvalidCredentials):
		services.SendError(w, http.StatusUnauthorized, services.CodeInvalidCredentials, "Invalid credentials")
	case services.IsRetryable(err):
		log.Printf("[API] %s timed out: %v", op, err)
		services.SendError(w, http.StatusServiceUnavailable, services.CodeRetryable, "Temporarily unavailable, retry later")
	default:
		log.Printf("[API] %s failed: %v", op, err)
		services.SendError(w, http.StatusInternalServerError, services.CodeInternal, "Internal server error")
	}
}

// pathID parses a uuid route parameter, writing a 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		services.SendError(w, http.StatusBadRequest, services.CodeValidationFailed, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
