package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/model"
	"github.com/skarim/filecabinet/internal/repository"
)

// UserRepo implements repository.UserRepository over the users collection.
type UserRepo struct {
	db *DB
}

var _ repository.UserRepository = (*UserRepo)(nil)

// Users returns the users collection adapter.
func (d *DB) Users() *UserRepo {
	return &UserRepo{db: d}
}

// Create inserts the user and fills in its assigned id. A duplicate email
// trips the unique index and surfaces as a Conflict, never as a raw
// driver error.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	res, err := r.db.users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("Already exist")
		}
		return fmt.Errorf("mongodb: inserting user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("mongodb: unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = oid
	return nil
}

// GetByEmail looks a user up by exact (case-sensitive) email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: finding user by email: %w", err)
	}
	return &user, nil
}

// GetByID looks a user up by its hex object id. A malformed id cannot
// match any record, so it is reported as absent rather than invalid.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound()
	}

	var user model.User
	err = r.db.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: finding user %s: %w", id, err)
	}
	return &user, nil
}

// Count returns the number of registered users, for the stats endpoint.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.db.users().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongodb: counting users: %w", err)
	}
	return n, nil
}
