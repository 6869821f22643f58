package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"scriptorium/internal/ports"
)

// ErrTierUnavailable is returned by a CacheTier made unavailable
var ErrTierUnavailable = errors.New("memory: cache tier unavailable")

// CacheTier is a ports.CacheTier backed by a map
type CacheTier struct {
	mu          sync.Mutex
	entries     map[string]ports.CacheEntry
	unavailable bool
	deletes     int
}

// NewCacheTier creates an empty tier
func NewCacheTier() *CacheTier {
	return &CacheTier{entries: make(map[string]ports.CacheEntry)}
}

// SetUnavailable makes every operation fail with ErrTierUnavailable
func (c *CacheTier) SetUnavailable(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unavailable = v
}

// Len returns the number of stored entries
func (c *CacheTier) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Deletes returns how many entries were deleted
func (c *CacheTier) Deletes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deletes
}

func (c *CacheTier) Load(_ context.Context, path string) (ports.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unavailable {
		return ports.CacheEntry{}, ErrTierUnavailable
	}
	e, ok := c.entries[path]
	if !ok {
		return ports.CacheEntry{}, ports.ErrCacheMiss
	}
	return ports.CacheEntry{Data: slices.Clone(e.Data), Timestamp: e.Timestamp}, nil
}

func (c *CacheTier) Save(_ context.Context, path string, entry ports.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unavailable {
		return ErrTierUnavailable
	}
	c.entries[path] = ports.CacheEntry{Data: slices.Clone(entry.Data), Timestamp: entry.Timestamp}
	return nil
}

func (c *CacheTier) Delete(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unavailable {
		return ErrTierUnavailable
	}
	if _, ok := c.entries[path]; ok {
		delete(c.entries, path)
		c.deletes++
	}
	return nil
}
