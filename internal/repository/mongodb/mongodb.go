// Package mongodb implements the repository interfaces over the document
// store. Two collections back the whole system: users and files. The DB
// struct owns the client handle; the server creates one at startup and all
// in-flight requests share it — the driver's handles are safe for
// concurrent use.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	filesCollection = "files"

	connectTimeout = 10 * time.Second
	pingTimeout    = 2 * time.Second
)

// DB wraps the mongo client and database handle.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to the document store at uri, selects dbName and ensures
// the unique index on users.email. Correctness of duplicate-registration
// handling relies on that index, so New fails rather than starting without
// it.
func New(ctx context.Context, uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting to %s: %w", uri, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: pinging %s: %w", uri, err)
	}

	db := client.Database(dbName)

	// Email uniqueness is enforced by the store, not by a racy
	// read-then-insert in the service.
	_, err = db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: creating email index: %w", err)
	}

	return &DB{client: client, db: db}, nil
}

// Alive reports whether the store currently answers a ping. Used only by
// the status endpoint; request paths fail generically on store errors
// instead of consulting this.
func (d *DB) Alive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return d.client.Ping(ctx, readpref.Primary()) == nil
}

// Close disconnects the client. Called during graceful shutdown.
func (d *DB) Close(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb: disconnecting: %w", err)
	}
	return nil
}

func (d *DB) users() *mongo.Collection {
	return d.db.Collection(usersCollection)
}

func (d *DB) files() *mongo.Collection {
	return d.db.Collection(filesCollection)
}
