package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/skarim/filecabinet/internal/service"
)

// AppAPI is the surface of the health/stats reporter the handlers need.
type AppAPI interface {
	Status(ctx context.Context) service.Status
	Stats(ctx context.Context) (service.Stats, error)
}

// AppHandler serves /status and /stats.
type AppHandler struct {
	app    AppAPI
	logger *slog.Logger
}

// NewAppHandler creates an AppHandler.
func NewAppHandler(app AppAPI, logger *slog.Logger) *AppHandler {
	return &AppHandler{app: app, logger: logger}
}

// HandleStatus reports store liveness. Always 200; the flags carry the
// health information.
func (h *AppHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Status(r.Context()))
}

// HandleStats reports aggregate user and file counts.
func (h *AppHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
