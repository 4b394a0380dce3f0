package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skarim/filecabinet/internal/repository"
)

// Pinger reports store liveness. The mongodb and redisstore adapters
// implement it.
type Pinger interface {
	Alive(ctx context.Context) bool
}

// AppService serves liveness and aggregate counts. Read-only, no side
// effects.
type AppService struct {
	db     Pinger
	cache  Pinger
	users  repository.UserRepository
	files  repository.FileRepository
	logger *slog.Logger
}

// NewAppService creates an AppService with all required dependencies.
func NewAppService(db, cache Pinger, users repository.UserRepository, files repository.FileRepository, logger *slog.Logger) *AppService {
	return &AppService{db: db, cache: cache, users: users, files: files, logger: logger}
}

// Status holds the liveness flags of the two stores. Store connectivity
// problems surface here rather than as request errors elsewhere.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats holds the aggregate record counts.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Status pings both stores.
func (s *AppService) Status(ctx context.Context) Status {
	return Status{
		Redis: s.cache.Alive(ctx),
		DB:    s.db.Alive(ctx),
	}
}

// Stats counts users and file records.
func (s *AppService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("service/app: counting users: %w", err)
	}
	files, err := s.files.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("service/app: counting files: %w", err)
	}
	return Stats{Users: users, Files: files}, nil
}
