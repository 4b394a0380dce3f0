package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// Disk stores payloads as flat files under a root directory. Handles are
// absolute paths whose final element is an xid — collision resistance comes
// entirely from the generator; there is no create-exclusive coordination
// between concurrent writers.
type Disk struct {
	root string
}

var _ Store = (*Disk)(nil)

// NewDisk ensures root exists and returns a store rooted there.
func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating root %s: %w", root, err)
	}
	return &Disk{root: root}, nil
}

// Write persists data under a fresh xid-named file and returns its path.
func (d *Disk) Write(_ context.Context, data []byte) (string, error) {
	handle := filepath.Join(d.root, xid.New().String())
	if err := os.WriteFile(handle, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: writing %s: %w", handle, err)
	}
	return handle, nil
}

// Exists reports whether handle names a stored payload.
func (d *Disk) Exists(handle string) bool {
	info, err := os.Stat(handle)
	return err == nil && !info.IsDir()
}

// Read returns the bytes behind handle.
func (d *Disk) Read(handle string) ([]byte, error) {
	data, err := os.ReadFile(handle)
	if err != nil {
		return nil, fmt.Errorf("storage: reading %s: %w", handle, err)
	}
	return data, nil
}

// SizeVariant returns the handle of a size-suffixed image variant, e.g.
// "<handle>_250". Variants are produced out of band by the worker; callers
// must still check Exists.
func SizeVariant(handle, size string) string {
	return handle + "_" + size
}
