package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by CacheTier.Load when nothing is stored
var ErrCacheMiss = errors.New("cache miss")

// CacheEntry is a persisted content response.
// Timestamp is milliseconds since the Unix epoch.
type CacheEntry struct {
	Data      []byte
	Timestamp int64
}

// CacheTier is the persistent tier of the content cache
type CacheTier interface {
	Load(ctx context.Context, path string) (CacheEntry, error)
	Save(ctx context.Context, path string, entry CacheEntry) error
	Delete(ctx context.Context, path string) error
}

// ContentFetcher performs GET requests for static JSON content.
// Implementations return an error for non-2xx responses without
// attempting to decode the body.
type ContentFetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}
