// Package storage holds raw file content on the local filesystem, addressed
// by opaque handles. Metadata records keep the handle; nothing else about
// the payload lives in the store.
package storage

import "context"

// Store is the content-storage contract the file service consumes.
type Store interface {
	// Write persists data under a freshly generated opaque handle and
	// returns the handle.
	Write(ctx context.Context, data []byte) (string, error)
	// Exists reports whether a handle resolves to stored content.
	Exists(handle string) bool
	// Read returns the bytes behind a handle.
	Read(handle string) ([]byte, error)
}
