// Package repository declares the store interfaces the services consume.
// Concrete adapters live in the mongodb and redisstore subpackages;
// service tests substitute in-memory fakes.
package repository

import (
	"context"
	"time"

	"github.com/skarim/filecabinet/internal/model"
)

// PageSize is the fixed page length for listings.
const PageSize = 20

// ListOptions selects one page of records under one parent.
type ListOptions struct {
	ParentID string // model.RootParent for top-level records
	Page     int64  // zero-based; skip = Page * PageSize
}

// UserRepository is the users collection.
type UserRepository interface {
	// Create inserts a user and fills in its ID. A duplicate email fails
	// with apperror.ErrConflict, never a store-level crash.
	Create(ctx context.Context, user *model.User) error
	// GetByEmail returns apperror.ErrNotFound when no user matches.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByID returns apperror.ErrNotFound when no user matches.
	GetByID(ctx context.Context, id string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

// FileRepository is the files collection.
type FileRepository interface {
	// Create inserts a record and fills in its ID.
	Create(ctx context.Context, file *model.File) error
	// GetByID fetches by id alone, regardless of owner.
	GetByID(ctx context.Context, id string) (*model.File, error)
	// GetOwned fetches by id AND owner. A record owned by someone else is
	// indistinguishable from an absent one: both are apperror.ErrNotFound.
	GetOwned(ctx context.Context, id, userID string) (*model.File, error)
	// ListOwned returns one page of the owner's records under a parent,
	// most recently created first. An empty page is not an error.
	ListOwned(ctx context.Context, userID string, opts ListOptions) ([]model.File, error)
	// SetVisibility atomically updates isPublic on the record matching
	// id AND owner and returns the updated record, or apperror.ErrNotFound.
	SetVisibility(ctx context.Context, id, userID string, public bool) (*model.File, error)
	Count(ctx context.Context) (int64, error)
}

// SessionStore maps opaque tokens to user ids with a store-enforced TTL.
type SessionStore interface {
	// Get returns the user id for token, or "" when the token is absent
	// or expired. Absence is not an error; callers decide how to react.
	Get(ctx context.Context, token string) (string, error)
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	// Del removes the session. Deleting an absent token is not an error.
	Del(ctx context.Context, token string) error
}
