package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/auth"
	"github.com/skarim/filecabinet/internal/model"
	"github.com/skarim/filecabinet/internal/queue"
	"github.com/skarim/filecabinet/internal/repository"
)

// UserService creates user records and exposes self-lookup.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	resolver  TokenResolver
	jobs      queue.Enqueuer
	logger    *slog.Logger
}

// NewUserService creates a UserService with all required dependencies.
func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	resolver TokenResolver,
	jobs queue.Enqueuer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		resolver:  resolver,
		jobs:      jobs,
		logger:    logger,
	}
}

// Register creates a user with a digested password and queues the welcome
// notification. The returned record carries the assigned id; the digest
// never leaves the service layer in a response (model.User excludes it
// from JSON).
//
// Duplicate emails fail with Conflict ("Already exist"); the store's
// unique index is the arbiter, so two concurrent registrations of the same
// email produce exactly one success.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" {
		return nil, apperror.Validation("Missing email")
	}
	if password == "" {
		return nil, apperror.Validation("Missing password")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: s.passwords.Hash(password),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/user: creating user: %w", err)
	}

	// Fire-and-forget: a broker outage must not fail the registration.
	if err := s.jobs.EnqueueWelcome(ctx, user.ID.Hex()); err != nil {
		s.logger.Warn("welcome job not enqueued",
			slog.String("userId", user.ID.Hex()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("user registered", slog.String("userId", user.ID.Hex()))
	return user, nil
}

// GetSelf returns the record of the user behind token. An unresolvable
// token and a resolved id with no backing record both fail Unauthorized.
func (s *UserService) GetSelf(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.resolver.ResolveIdentity(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, apperror.Unauthorized()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized()
		}
		return nil, fmt.Errorf("service/user: fetching user %s: %w", userID, err)
	}
	return user, nil
}
