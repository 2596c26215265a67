package storage

import (
	"context"
	"io"
)

// Storage is the namespace stored assets live in. Implementations are
// safe for concurrent use.
//
// The namespace is flat: names are bare filenames of the form
// "<baseId>.<extension>", no subdirectories, no sidecar metadata.
type Storage interface {
	// Create writes a new object under name and returns the number of
	// bytes written. Creation is exclusive: if an object with that name
	// already exists, Create fails with ErrAlreadyExists and the
	// existing object is left untouched. A failed write never leaves a
	// partial object behind.
	Create(ctx context.Context, name string, r io.Reader) (int64, error)

	// ExistsWithPrefix reports whether any object's name starts with
	// prefix. Used by name allocation to enforce base-id uniqueness
	// across all extensions.
	ExistsWithPrefix(ctx context.Context, prefix string) bool

	// Remove deletes a single object. Removing a missing object returns
	// ErrNotFound.
	Remove(ctx context.Context, name string) error

	// URL returns the public URL for a stored object.
	URL(name string) string

	// Healthcheck verifies the backing store is writable.
	Healthcheck(ctx context.Context) error
}
