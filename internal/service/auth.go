// Package service contains the business logic: token lifecycle, the user
// directory and the file-metadata state machine. Handlers stay thin;
// everything the API must enforce lives here, expressed over the injected
// repository/store interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/auth"
	"github.com/skarim/filecabinet/internal/repository"
)

// SessionTTL is how long a login stays valid without an explicit logout.
// Expiry is enforced by the session store; nothing re-checks it here.
const SessionTTL = 24 * time.Hour

// TokenResolver resolves a session token to a user id. AuthService
// implements it; the other services depend on the interface so their tests
// can substitute a fake.
type TokenResolver interface {
	// ResolveIdentity returns the user id for token, or "" when the token
	// is missing, unknown or expired. It never reports absence as an
	// error; callers uniformly map "" to Unauthorized.
	ResolveIdentity(ctx context.Context, token string) (string, error)
}

// AuthService issues and revokes session tokens and maps credentials to
// identity.
type AuthService struct {
	users     repository.UserRepository
	sessions  repository.SessionStore
	passwords *auth.PasswordService
	logger    *slog.Logger
}

var _ TokenResolver = (*AuthService)(nil)

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionStore,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// Login exchanges credentials for a fresh session token with a 24h expiry.
//
// Every failure is the same Unauthorized: an unknown email and a wrong
// password must be indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.Unauthorized()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthorized()
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if !s.passwords.Verify(user.PasswordHash, password) {
		return "", apperror.Unauthorized()
	}

	token := auth.NewToken()
	if err := s.sessions.Set(ctx, token, user.ID.Hex(), SessionTTL); err != nil {
		return "", fmt.Errorf("service/auth: storing session: %w", err)
	}

	s.logger.Info("user logged in", slog.String("userId", user.ID.Hex()))
	return token, nil
}

// Logout revokes the session behind token. A token that is absent —
// because it expired, never existed, or was already logged out — fails
// Unauthorized: tokens are single-use-until-expiry, not revocable and
// reusable.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	userID, err := s.ResolveIdentity(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return apperror.Unauthorized()
	}

	if err := s.sessions.Del(ctx, token); err != nil {
		return fmt.Errorf("service/auth: revoking session: %w", err)
	}

	s.logger.Info("user logged out", slog.String("userId", userID))
	return nil
}

// ResolveIdentity is the pure token → user id lookup consulted by every
// authenticated operation.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return "", fmt.Errorf("service/auth: resolving token: %w", err)
	}
	return userID, nil
}
