package storage

import (
	"context"
	"io"
	"time"
)

// BlobInfo describes a stored object, as returned by List.
type BlobInfo struct {
	Key          string
	LastModified time.Time
}

// BlobStore is content storage keyed by a generated reference. The metadata
// database never holds file bytes, only keys produced here.
type BlobStore interface {
	// Put stores the object under key. A key is written at most once.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns every stored object. Used by the orphan reaper.
	List(ctx context.Context) ([]BlobInfo, error)
	// URL resolves a key to the address a client can fetch the bytes from.
	URL(key string) string
}
