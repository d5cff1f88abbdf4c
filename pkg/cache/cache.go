// Package cache stores rendered artifacts keyed by content hashes, so the
// HTTP server and the CLI can skip re-arranging maps they have already seen.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-blob store with per-entry expiry. A miss is not an error:
// Get reports it through the second return value.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
