package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	mW "github.com/ruralpay/corebank/internal/middleware"
	"github.com/ruralpay/corebank/internal/models"
	"github.com/ruralpay/corebank/internal/services"
)

// CredentialsRequest is the body of /register and /login
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64" example:"alice"`
	Password string `json:"password" validate:"required,min=6,max=128" example:"s3cret!"`
}

// LoginResponse carries the user, their accounts and a session token
type LoginResponse struct {
	User     models.PublicUser `json:"user"`
	Accounts []models.Account  `json:"accounts"`
	Token    string            `json:"token,omitempty"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

type UserHandler struct {
	identity  *services.IdentityService
	ledger    *services.LedgerService
	tokens    *services.TokenService
	validator *services.ValidationHelper
}

func NewUserHandler(identity *services.IdentityService, ledger *services.LedgerService, tokens *services.TokenService) *UserHandler {
	return &UserHandler{
		identity:  identity,
		ledger:    ledger,
		tokens:    tokens,
		validator: services.NewValidationHelper(),
	}
}

// Register creates a user
// @Summary Register user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} models.PublicUser
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.identity.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, "register", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, user.Public())
}

// Login verifies credentials and returns the user's accounts
// @Summary Login
// @Tags Users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.identity.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("[AUTH] Failed login for username %q", req.Username)
			services.SendError(w, http.StatusUnauthorized, services.CodeInvalidCredentials, "Invalid username or password")
			return
		}
		respondError(w, "login", err)
		return
	}

	accounts, err := h.ledger.ListAccounts(r.Context(), user.ID)
	if err != nil {
		log.Printf("[AUTH] Could not list accounts for user %s: %v", user.ID, err)
		accounts = []models.Account{}
	}

	resp := LoginResponse{User: user.Public(), Accounts: accounts}
	if h.tokens != nil {
		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			respondError(w, "issue token", err)
			return
		}
		resp.Token = token
	}
	services.WriteJSON(w, http.StatusOK, resp)
}

// GetUser returns the public view of a user
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.PublicUser
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.identity.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, "get user", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, user.Public())
}

// DeleteUser removes a user and all of their accounts
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.identity.DeleteUser(r.Context(), id)
	if err != nil {
		respondError(w, "delete user", err)
		return
	}
	if deleted == 0 {
		services.SendError(w, http.StatusNotFound, services.CodeNotFound, "User not found")
		return
	}
	services.WriteJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// Logout revokes the bearer token
// @Summary Logout
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /auth/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.tokens == nil {
		services.SendError(w, http.StatusNotFound, services.CodeNotFound, "Session tokens are not enabled")
		return
	}

	token, ok := mW.BearerToken(r)
	if !ok {
		services.SendError(w, http.StatusUnauthorized, services.CodeUnauthorized, "Authorization header required")
		return
	}

	if err := h.tokens.Revoke(r.Context(), token); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			services.SendError(w, http.StatusUnauthorized, services.CodeUnauthorized, "Invalid token")
			return
		}
		respondError(w, "logout", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Account returns the authenticated user with their accounts
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} LoginResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /auth/account [get]
func (h *UserHandler) Account(w http.ResponseWriter, r *http.Request) {
	userID, ok := mW.UserIDFromContext(r.Context())
	if !ok || userID == uuid.Nil {
		services.SendError(w, http.StatusUnauthorized, services.CodeUnauthorized, "Unauthorized")
		return
	}

	user, err := h.identity.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, "current user", err)
		return
	}

	accounts, err := h.ledger.ListAccounts(r.Context(), userID)
	if err != nil {
		respondError(w, "current user accounts", err)
		return
	}
	services.WriteJSON(w, http.StatusOK, LoginResponse{User: user.Public(), Accounts: accounts})
}
