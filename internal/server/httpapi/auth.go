// Package httpapi provides the HTTP surface of the CryptVault server:
// routing, bearer-token middleware, and JSON handlers for registration,
// login, and the vault file operations.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cryptvault-io/cryptvault/internal/server/models"
)

// AuthService defines the identity operations required by the HTTP handlers.
type AuthService interface {
	Register(ctx context.Context, name, password string) (*models.VaultAccount, string, error)
	Login(ctx context.Context, name, password string) (*models.VaultAccount, string, error)
}

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	Service AuthService
}

// credentialsRequest is the JSON payload for both register and login.
type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// sessionResponse is returned on successful registration or login.
type sessionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Register handles POST /auth/users/register. A malformed body is a plain
// 400 before any store access; field validation and name uniqueness are
// enforced by the service.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	vault, token, err := h.Service.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{ID: vault.ID, Name: vault.Name, Token: token})
}

// Login handles POST /auth/users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	vault, token, err := h.Service.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{ID: vault.ID, Name: vault.Name, Token: token})
}
