package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/skarim/filecabinet/internal/repository"
	"github.com/skarim/filecabinet/internal/storage"
)

// Worker consumes post-processing tasks. It shares the repository and
// content-store handles with the API but runs in its own process
// (cmd/worker).
type Worker struct {
	users  repository.UserRepository
	files  repository.FileRepository
	store  storage.Store
	logger *slog.Logger
}

// NewWorker creates a Worker with its store handles.
func NewWorker(users repository.UserRepository, files repository.FileRepository, store storage.Store, logger *slog.Logger) *Worker {
	return &Worker{users: users, files: files, store: store, logger: logger}
}

// Mux returns the task router for this worker.
func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeThumbnail, w.HandleThumbnail)
	mux.HandleFunc(TypeWelcome, w.HandleWelcome)
	return mux
}

// HandleThumbnail validates a thumbnail job: the record must exist for
// that owner and its payload must be on disk. The resize step itself is
// delegated to the image pipeline; this worker owns job validation and
// accounting.
func (w *Worker) HandleThumbnail(ctx context.Context, t *asynq.Task) error {
	var p ThumbnailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("worker: decoding thumbnail payload: %w", err)
	}
	if p.FileID == "" {
		return fmt.Errorf("worker: %w", errMissingField("fileId"))
	}
	if p.UserID == "" {
		return fmt.Errorf("worker: %w", errMissingField("userId"))
	}

	file, err := w.files.GetOwned(ctx, p.FileID, p.UserID)
	if err != nil {
		return fmt.Errorf("worker: file not found: %w", err)
	}
	if !w.store.Exists(file.LocalPath) {
		return fmt.Errorf("worker: payload missing for file %s", p.FileID)
	}

	w.logger.Info("thumbnail job processed",
		slog.String("fileId", p.FileID),
		slog.String("userId", p.UserID),
		slog.String("name", file.Name),
	)
	return nil
}

// HandleWelcome resolves the registered user and emits the welcome
// notification. Delivery is a log line standing in for the mail hook.
func (w *Worker) HandleWelcome(ctx context.Context, t *asynq.Task) error {
	var p WelcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("worker: decoding welcome payload: %w", err)
	}
	if p.UserID == "" {
		return fmt.Errorf("worker: %w", errMissingField("userId"))
	}

	user, err := w.users.GetByID(ctx, p.UserID)
	if err != nil {
		return fmt.Errorf("worker: user not found: %w", err)
	}

	w.logger.Info("welcome notification sent", slog.String("email", user.Email))
	return nil
}

func errMissingField(field string) error {
	return fmt.Errorf("missing %s", field)
}
