package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"scriptorium/internal/adapters/memory"
	"scriptorium/internal/application"
	"scriptorium/internal/ports"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

const genPath = "/data/books/gen.json"

func TestCache_SecondGetReturnsSameData(t *testing.T) {
	fetcher := memory.NewFetcher(map[string]string{genPath: `{"book":"gen"}`})
	tier := memory.NewCacheTier()
	c := NewCache(fetcher, tier, WithClock(newFakeClock().Now))

	a, err := c.Get(context.Background(), genPath)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	b, err := c.Get(context.Background(), genPath)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if &a[0] != &b[0] {
		t.Error("second Get() returned a different slice")
	}
	if n := fetcher.Calls(genPath); n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}
	if tier.Len() != 1 {
		t.Errorf("tier entries = %d, want 1", tier.Len())
	}
}

func TestCache_ExpiredEntryIsRefetched(t *testing.T) {
	clock := newFakeClock()
	fetcher := memory.NewFetcher(map[string]string{genPath: `{"v":1}`})
	tier := memory.NewCacheTier()
	c := NewCache(fetcher, tier, WithClock(clock.Now))

	if _, err := c.Get(context.Background(), genPath); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	fetcher.Put(genPath, `{"v":2}`)
	clock.Advance(8 * 24 * time.Hour)

	got, err := c.Get(context.Background(), genPath)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("Get() = %s, want refreshed document", got)
	}
	if n := fetcher.Calls(genPath); n != 2 {
		t.Errorf("fetch calls = %d, want 2", n)
	}

	entry, err := tier.Load(context.Background(), genPath)
	if err != nil {
		t.Fatalf("tier Load() error = %v", err)
	}
	if entry.Timestamp != clock.Now().UnixMilli() || string(entry.Data) != `{"v":2}` {
		t.Errorf("tier entry = {%s %d}, want overwritten", entry.Data, entry.Timestamp)
	}
}

func TestCache_StalePersistedEntryIsEvicted(t *testing.T) {
	clock := newFakeClock()
	fetcher := memory.NewFetcher(map[string]string{genPath: `{"fresh":true}`})
	tier := memory.NewCacheTier()
	old := clock.Now().Add(-8 * 24 * time.Hour).UnixMilli()
	tier.Save(context.Background(), genPath, ports.CacheEntry{Data: []byte(`{"fresh":false}`), Timestamp: old})

	c := NewCache(fetcher, tier, WithClock(clock.Now))
	got, err := c.Get(context.Background(), genPath)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"fresh":true}` {
		t.Errorf("Get() = %s, want network document", got)
	}
	if tier.Deletes() != 1 {
		t.Errorf("tier deletes = %d, want 1", tier.Deletes())
	}
}

func TestCache_FreshPersistedEntrySkipsNetwork(t *testing.T) {
	clock := newFakeClock()
	fetcher := memory.NewFetcher(nil)
	tier := memory.NewCacheTier()
	recent := clock.Now().Add(-6 * 24 * time.Hour).UnixMilli()
	tier.Save(context.Background(), genPath, ports.CacheEntry{Data: []byte(`{"cached":true}`), Timestamp: recent})

	c := NewCache(fetcher, tier, WithClock(clock.Now))
	got, err := c.Get(context.Background(), genPath)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"cached":true}` {
		t.Errorf("Get() = %s", got)
	}
	if fetcher.Calls(genPath) != 0 {
		t.Error("network used despite a fresh persisted entry")
	}
}

func TestCache_UnavailableTierFetchesUncached(t *testing.T) {
	tests := []struct {
		name string
		tier func() ports.CacheTier
	}{
		{name: "nil tier", tier: func() ports.CacheTier { return nil }},
		{name: "failing tier", tier: func() ports.CacheTier {
			tier := memory.NewCacheTier()
			tier.SetUnavailable(true)
			return tier
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := memory.NewFetcher(map[string]string{genPath: `{}`})
			c := NewCache(fetcher, tt.tier())

			for i := 0; i < 2; i++ {
				if _, err := c.Get(context.Background(), genPath); err != nil {
					t.Fatalf("Get() error = %v", err)
				}
			}
			if n := fetcher.Calls(genPath); n != 2 {
				t.Errorf("fetch calls = %d, want 2", n)
			}
		})
	}
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	fetcher := memory.NewFetcher(map[string]string{"/data/bad.json": `{"oops"`})
	c := NewCache(fetcher, memory.NewCacheTier())

	_, err := c.Get(context.Background(), "/data/books/xyz.json")
	if !errors.Is(err, application.ErrContentUnavailable) {
		t.Errorf("missing document error = %v, want ErrContentUnavailable", err)
	}
	c.Get(context.Background(), "/data/books/xyz.json")
	if n := fetcher.Calls("/data/books/xyz.json"); n != 2 {
		t.Errorf("fetch calls = %d, want 2 (no negative caching, no retries)", n)
	}

	_, err = c.Get(context.Background(), "/data/bad.json")
	if err == nil || errors.Is(err, application.ErrContentUnavailable) {
		t.Errorf("malformed document error = %v, want parse error", err)
	}
}

// gateFetcher blocks every fetch until release is closed
type gateFetcher struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func newGateFetcher() *gateFetcher {
	return &gateFetcher{entered: make(chan struct{}, 16), release: make(chan struct{})}
}

func (f *gateFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	f.calls.Add(1)
	f.entered <- struct{}{}
	<-f.release
	return []byte(`{"ok":true}`), nil
}

func getConcurrently(c *Cache, n int) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Get(context.Background(), genPath)
		}()
	}
	return &wg
}

func TestCache_ConcurrentMissesAreNotCoalescedByDefault(t *testing.T) {
	f := newGateFetcher()
	c := NewCache(f, memory.NewCacheTier())

	wg := getConcurrently(c, 3)
	for i := 0; i < 3; i++ {
		<-f.entered
	}
	close(f.release)
	wg.Wait()

	if n := f.calls.Load(); n != 3 {
		t.Errorf("fetch calls = %d, want 3", n)
	}
}

func TestCache_CoalescingSharesOneFetch(t *testing.T) {
	f := newGateFetcher()
	c := NewCache(f, memory.NewCacheTier(), WithCoalescing(true))

	wg := getConcurrently(c, 3)
	<-f.entered
	time.Sleep(50 * time.Millisecond)
	close(f.release)
	wg.Wait()

	if n := f.calls.Load(); n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}
}
