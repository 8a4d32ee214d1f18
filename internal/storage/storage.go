package storage

import (
	"context"
	"time"
)

// FileStorage keeps uploaded application documents. Paths are slash
// separated and relative to the store's root or bucket.
type FileStorage interface {
	// Upload never overwrites an existing object.
	Upload(ctx context.Context, path, contentType string, data []byte) error
	Remove(ctx context.Context, paths []string) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
