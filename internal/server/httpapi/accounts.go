package httpapi

import (
	"errors"
	"net/http"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/service"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

type registerRequest struct {
	// Email is accepted for forward compatibility but not used yet.
	Email     string `json:"email"`
	AccountID string `json:"accountId"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Icon      int    `json:"icon"`
}

type updateAccountRequest struct {
	AccountID string  `json:"accountId"`
	Token     string  `json:"token"`
	Name      *string `json:"name"`
	Icon      *int    `json:"icon"`
	Password  *string `json:"password"`
}

type loginRequest struct {
	AccountID string `json:"accountId"`
	Password  string `json:"password"`
}

type accountResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Account *models.SanitizedAccount `json:"account,omitempty"`
}

func accountFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, accountResponse{Success: false, Message: message})
}

func (rt *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var body registerRequest
	if !rt.decodeJSON(w, req, &body) {
		return
	}
	acc, err := rt.services.Accounts.Register(req.Context(), body.AccountID, body.Password, body.Name, body.Icon)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		accountFailure(w, http.StatusBadRequest, "accountId and password are required.")
	case errors.Is(err, service.ErrDuplicateAccount):
		accountFailure(w, http.StatusBadRequest, "Account ID already exists.")
	case err != nil:
		accountFailure(w, http.StatusInternalServerError, "Internal server error")
	default:
		writeJSON(w, http.StatusCreated, accountResponse{
			Success: true,
			Message: "Account successfully created.",
			Account: &acc,
		})
	}
}

func (rt *Router) handleUpdateAccount(w http.ResponseWriter, req *http.Request) {
	var body updateAccountRequest
	if !rt.decodeJSON(w, req, &body) {
		return
	}
	err := rt.services.Accounts.Update(req.Context(), body.AccountID, body.Token, body.Name, body.Icon, body.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		accountFailure(w, http.StatusBadRequest, "accountId and token are required.")
	case errors.Is(err, service.ErrNotFoundOrUnauthorized):
		accountFailure(w, http.StatusNotFound, "Account not found or invalid token.")
	case err != nil:
		accountFailure(w, http.StatusInternalServerError, "Internal server error")
	default:
		writeJSON(w, http.StatusOK, accountResponse{Success: true, Message: "Account updated successfully."})
	}
}

func (rt *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if !rt.decodeJSON(w, req, &body) {
		return
	}
	acc, err := rt.services.Accounts.Login(req.Context(), body.AccountID, body.Password)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		accountFailure(w, http.StatusUnauthorized, "Account not found.")
	case errors.Is(err, service.ErrBanned):
		accountFailure(w, http.StatusForbidden, "This account has been banned.")
	case errors.Is(err, service.ErrInvalidCredential):
		accountFailure(w, http.StatusUnauthorized, "Wrong password.")
	case err != nil:
		accountFailure(w, http.StatusInternalServerError, "Internal server error")
	default:
		writeJSON(w, http.StatusOK, accountResponse{
			Success: true,
			Message: "Authentication successful.",
			Account: &acc,
		})
	}
}

// No mail is ever sent; the endpoint acknowledges every request identically so
// it leaks nothing about which addresses exist.
func (rt *Router) handleRequestPasswordReset(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !rt.decodeJSON(w, req, &body) {
		return
	}
	writeJSON(w, http.StatusOK, accountResponse{
		Success: true,
		Message: "If the email is registered, a password reset link has been sent.",
	})
}
