package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/model"
)

// UserAPI is the surface of the user directory the handlers need.
type UserAPI interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	GetSelf(ctx context.Context, token string) (*model.User, error)
}

// UserHandler serves /users and /users/me.
type UserHandler struct {
	users  UserAPI
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users UserAPI, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a user.
//
// POST /users, body {"email":..., "password":...} → 201 {id, email}.
// The password digest is never part of the response (model.User hides it).
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An unreadable body has no email in it.
		writeError(w, apperror.Validation("Missing email"))
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleGetMe returns the caller's own record.
//
// GET /users/me, header: X-Token → 200 {id, email}.
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetSelf(r.Context(), r.Header.Get(tokenHeader))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
