// Package content serves the static JSON documents the reader displays,
// through a two-tier read-through cache.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"scriptorium/internal/ports"
)

// DefaultTTL is the freshness window of a cached document
const DefaultTTL = 7 * 24 * time.Hour

// Option configures a Cache
type Option func(*Cache)

// WithTTL sets the freshness window
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithCoalescing makes concurrent misses for the same path share one fetch
func WithCoalescing(on bool) Option {
	return func(c *Cache) {
		c.coalesce = on
	}
}

// WithLogger reports persistent tier failures to logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

type memEntry struct {
	data      json.RawMessage
	timestamp int64
}

// Cache looks documents up in memory, then in the persistent tier, then
// over the network. Stale entries are evicted when they are next accessed.
// Errors are never cached and failed fetches are not retried.
type Cache struct {
	fetcher  ports.ContentFetcher
	tier     ports.CacheTier
	ttl      time.Duration
	now      func() time.Time
	coalesce bool
	logger   *log.Logger
	group    singleflight.Group

	mu  sync.Mutex
	mem map[string]memEntry
}

// NewCache creates a cache in front of fetcher. tier may be nil, in which
// case every Get is an uncached fetch.
func NewCache(fetcher ports.ContentFetcher, tier ports.CacheTier, opts ...Option) *Cache {
	c := &Cache{
		fetcher: fetcher,
		tier:    tier,
		ttl:     DefaultTTL,
		now:     time.Now,
		mem:     make(map[string]memEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the document at path. Within the freshness window repeated
// calls return the same slice without touching the network.
func (c *Cache) Get(ctx context.Context, path string) (json.RawMessage, error) {
	if !c.coalesce {
		return c.get(ctx, path)
	}
	v, err, _ := c.group.Do(path, func() (any, error) {
		return c.get(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

func (c *Cache) get(ctx context.Context, path string) (json.RawMessage, error) {
	if data, ok := c.fromMemory(path); ok {
		return data, nil
	}

	if c.tier == nil {
		return c.fetch(ctx, path)
	}

	entry, err := c.tier.Load(ctx, path)
	switch {
	case err == nil:
		if c.fresh(entry.Timestamp) {
			data := json.RawMessage(entry.Data)
			c.remember(path, data, entry.Timestamp)
			return data, nil
		}
		if err := c.tier.Delete(ctx, path); err != nil {
			c.logf("evict %s: %v", path, err)
		}
	case errors.Is(err, ports.ErrCacheMiss):
	default:
		c.logf("cache tier unavailable, fetching %s uncached: %v", path, err)
		return c.fetch(ctx, path)
	}

	data, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	ts := c.now().UnixMilli()
	c.remember(path, data, ts)
	if err := c.tier.Save(ctx, path, ports.CacheEntry{Data: data, Timestamp: ts}); err != nil {
		c.logf("store %s: %v", path, err)
	}
	return data, nil
}

// Invalidate drops path from both tiers
func (c *Cache) Invalidate(ctx context.Context, path string) error {
	c.mu.Lock()
	delete(c.mem, path)
	c.mu.Unlock()
	if c.tier == nil {
		return nil
	}
	return c.tier.Delete(ctx, path)
}

func (c *Cache) fromMemory(path string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.mem[path]
	if !ok {
		return nil, false
	}
	if !c.fresh(e.timestamp) {
		delete(c.mem, path)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) remember(path string, data json.RawMessage, ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[path] = memEntry{data: data, timestamp: ts}
}

func (c *Cache) fresh(ts int64) bool {
	return c.now().UnixMilli()-ts < c.ttl.Milliseconds()
}

// fetch performs one network request and checks the body is JSON.
// Non-2xx responses are rejected by the fetcher before this point.
func (c *Cache) fetch(ctx context.Context, path string) (json.RawMessage, error) {
	body, err := c.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	var data json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return data, nil
}

func (c *Cache) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
