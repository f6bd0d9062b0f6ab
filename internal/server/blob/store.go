// Package blob adapts an S3-compatible object store for vault file custody.
// Blobs are private; retrieval happens only through signed, expiring URLs.
package blob

import (
	"context"
	"io"
	"time"
)

// Store is the object-storage adapter consumed by the custody service.
type Store interface {
	// Put streams body to the store under key. The blob is durable when Put
	// returns nil.
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error

	// Delete removes the blob stored under key.
	Delete(ctx context.Context, key string) error

	// SignedGetURL mints a retrieval URL for key that expires after ttl.
	// The permanent key is never exposed to callers of the HTTP surface.
	SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
