package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/model"
	"github.com/skarim/filecabinet/internal/repository"
)

// FileRepo implements repository.FileRepository over the files collection.
type FileRepo struct {
	db *DB
}

var _ repository.FileRepository = (*FileRepo)(nil)

// Files returns the files collection adapter.
func (d *DB) Files() *FileRepo {
	return &FileRepo{db: d}
}

// Create inserts the record and fills in its assigned id. Exactly one
// insert per upload; single-document inserts are atomic in the store, which
// is all the concurrency model relies on.
func (r *FileRepo) Create(ctx context.Context, file *model.File) error {
	res, err := r.db.files().InsertOne(ctx, file)
	if err != nil {
		return fmt.Errorf("mongodb: inserting file: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("mongodb: unexpected inserted id type %T", res.InsertedID)
	}
	file.ID = oid
	return nil
}

// GetByID fetches a record by id alone, regardless of owner. Used by the
// content endpoint, which applies its own visibility rules.
func (r *FileRepo) GetByID(ctx context.Context, id string) (*model.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound()
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetOwned fetches a record by id AND owner. Someone else's record and a
// nonexistent one produce the same NotFound.
func (r *FileRepo) GetOwned(ctx context.Context, id, userID string) (*model.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound()
	}
	return r.findOne(ctx, bson.M{"_id": oid, "userId": userID})
}

func (r *FileRepo) findOne(ctx context.Context, filter bson.M) (*model.File, error) {
	var file model.File
	err := r.db.files().FindOne(ctx, filter).Decode(&file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: finding file: %w", err)
	}
	return &file, nil
}

// ListOwned returns one page of the owner's records under a parent, newest
// first. Object ids embed their creation time, so sorting on _id
// descending is creation-order descending.
func (r *FileRepo) ListOwned(ctx context.Context, userID string, opts repository.ListOptions) ([]model.File, error) {
	filter := bson.M{"userId": userID, "parentId": opts.ParentID}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(opts.Page * repository.PageSize).
		SetLimit(repository.PageSize)

	cur, err := r.db.files().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing files: %w", err)
	}
	defer cur.Close(ctx)

	files := []model.File{}
	if err := cur.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("mongodb: decoding file list: %w", err)
	}
	return files, nil
}

// SetVisibility flips isPublic on the record matching id AND owner in a
// single atomic update and returns the record as updated.
func (r *FileRepo) SetVisibility(ctx context.Context, id, userID string, public bool) (*model.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound()
	}

	after := options.After
	var file model.File
	err = r.db.files().FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "userId": userID},
		bson.M{"$set": bson.M{"isPublic": public}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: updating file visibility: %w", err)
	}
	return &file, nil
}

// Count returns the number of file records, for the stats endpoint.
func (r *FileRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.db.files().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongodb: counting files: %w", err)
	}
	return n, nil
}
