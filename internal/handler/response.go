// Package handler is the HTTP layer: it parses requests, calls services
// and writes JSON. All semantics live in the service layer; the only logic
// here is wire-shaping.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/skarim/filecabinet/internal/apperror"
)

// tokenHeader carries the session token on authenticated requests.
const tokenHeader = "X-Token"

// ErrorResponse is the error body shape for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends data as JSON with the given status. Headers must be set
// before the first write; order here matters.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a service error to its HTTP status. This is the single
// place domain errors become status codes.
//
// Conflict maps to 400, not 409: duplicate registration is reported as
// `400 {"error":"Already exist"}` by contract.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}
		writeJSON(w, status, ErrorResponse{Error: appErr.Message})
		return
	}

	// Anything else is a store or internal failure; never leak details.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
