// Package model defines the records persisted in the metadata store.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. Email is unique across the users
// collection; PasswordHash is the hex SHA3-256 digest of the password and
// must never appear in an API response (note the json:"-").
//
// Users are created by registration and never mutated or deleted.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
}
