package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// File record types. A record's type is fixed at creation.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// RootParent is the sentinel parent id for top-level records.
const RootParent = "0"

// File is a file, image or folder record in the files collection.
//
// UserID (the owner) and ParentID are stored as hex object-id strings;
// ParentID is RootParent for top-level records and otherwise must point at
// an existing record of type folder. LocalPath is the opaque handle into
// content storage and is only set for files and images.
//
// The only mutable field after creation is IsPublic.
type File struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"`
	IsPublic  bool               `bson:"isPublic" json:"isPublic"`
	ParentID  string             `bson:"parentId" json:"parentId"`
	LocalPath string             `bson:"localPath,omitempty" json:"localPath,omitempty"`
}

// ValidType reports whether t is one of the three record types.
func ValidType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

// Listed returns the projection used by list responses: everything except
// the content-storage path. Direct gets keep LocalPath; listings never
// expose it.
func (f File) Listed() File {
	f.LocalPath = ""
	return f
}
