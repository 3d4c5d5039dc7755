package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1_048_576 // 1 MB

// Stable machine-readable error codes returned alongside the message.
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnknownOwner       = "UNKNOWN_OWNER"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRetryable          = "RETRYABLE"
	CodeInternal           = "INTERNAL"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Code    string            `json:"code"`              // Machine-readable error code
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(),
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// DecodeAndValidate reads a single JSON object from the request body into dst
// and validates it. On failure the error response has already been written
// and false is returned.
func (vh *ValidationHelper) DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		SendError(w, http.StatusBadRequest, CodeValidationFailed, "Invalid request body")
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendError(w, http.StatusBadRequest, CodeValidationFailed, "Request body must only contain a single JSON object")
		return false
	}

	if err := vh.ValidateStruct(dst); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return false
	}
	return true
}

// SendErrorResponse sends a JSON validation error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	errorResp := ErrorResponse{Error: message, Code: CodeValidationFailed}

	var fieldErrs validator.ValidationErrors
	if errors.As(validationErr, &fieldErrs) {
		errorResp.Details = make(map[string]string)
		for _, err := range fieldErrs {
			errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
		}
	}

	WriteJSON(w, statusCode, errorResp)
}

// SendError sends a JSON error with a machine-readable code
func SendError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
