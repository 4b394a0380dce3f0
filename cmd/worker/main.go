// The background worker: consumes thumbnail and welcome jobs from the
// redis-backed queue. Runs alongside the API server and shares its stores.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/skarim/filecabinet/internal/config"
	"github.com/skarim/filecabinet/internal/queue"
	"github.com/skarim/filecabinet/internal/repository/mongodb"
	"github.com/skarim/filecabinet/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := mongodb.New(context.Background(), cfg.MongoURI(), cfg.DBName)
	if err != nil {
		logger.Error("failed to open metadata store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Warn("closing metadata store", slog.String("error", err.Error()))
		}
	}()

	store, err := storage.NewDisk(cfg.FolderPath)
	if err != nil {
		logger.Error("failed to open content storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	worker := queue.NewWorker(db.Users(), db.Files(), store, logger)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr()},
		asynq.Config{Concurrency: 10},
	)

	logger.Info("worker starting", slog.String("broker", cfg.RedisAddr()))
	if err := srv.Run(worker.Mux()); err != nil {
		logger.Error("worker error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
