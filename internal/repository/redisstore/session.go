// Package redisstore implements the session store over redis. Each session
// is a single key auth_<token> → user id with a store-enforced TTL; the
// service never re-checks expiry itself.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skarim/filecabinet/internal/repository"
)

const keyPrefix = "auth_"

// Sessions is the redis-backed repository.SessionStore.
type Sessions struct {
	client *redis.Client
}

var _ repository.SessionStore = (*Sessions)(nil)

// New dials redis at addr and verifies the connection.
func New(ctx context.Context, addr string) (*Sessions, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: pinging %s: %w", addr, err)
	}
	return &Sessions{client: client}, nil
}

// NewFromClient wraps an existing client. The queue shares the same redis
// instance, so the server can hand both components one connection config.
func NewFromClient(client *redis.Client) *Sessions {
	return &Sessions{client: client}
}

// Get resolves a token to a user id. An absent or expired token returns
// ("", nil): absence is an expected outcome, not a store failure.
func (s *Sessions) Get(ctx context.Context, token string) (string, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redisstore: getting session: %w", err)
	}
	return val, nil
}

// Set stores token → userID for ttl.
func (s *Sessions) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: storing session: %w", err)
	}
	return nil
}

// Del removes the session for token.
func (s *Sessions) Del(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redisstore: deleting session: %w", err)
	}
	return nil
}

// Alive reports whether redis currently answers a ping.
func (s *Sessions) Alive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err() == nil
}

// Close releases the connection. Called during graceful shutdown.
func (s *Sessions) Close() error {
	return s.client.Close()
}
