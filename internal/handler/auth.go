package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/skarim/filecabinet/internal/apperror"
)

// AuthAPI is the surface of the authentication service the handlers need.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler serves /connect and /disconnect.
type AuthHandler struct {
	auth   AuthAPI
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthAPI, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// TokenResponse is the login response body.
type TokenResponse struct {
	Token string `json:"token"`
}

// HandleConnect exchanges Basic credentials for a session token.
//
// GET /connect, header: Authorization: Basic base64(email:password).
// A missing or malformed header fails exactly like bad credentials.
func (h *AuthHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// HandleDisconnect revokes the caller's session.
//
// GET /disconnect, header: X-Token. Succeeds with 204 and no body.
func (h *AuthHandler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), r.Header.Get(tokenHeader)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
