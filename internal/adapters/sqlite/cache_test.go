package sqlite

import (
	"context"
	"errors"
	"testing"

	"scriptorium/internal/ports"
)

func openTestTier(t *testing.T) *CacheTier {
	t.Helper()
	tier, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() {
		if err := tier.Close(); err != nil {
			t.Errorf("failed to close cache: %v", err)
		}
	})
	return tier
}

func TestCacheTier_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	tier := openTestTier(t)
	path := "/data/books/gen.json"

	if _, err := tier.Load(ctx, path); !errors.Is(err, ports.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	want := ports.CacheEntry{Data: []byte(`{"book":"gen"}`), Timestamp: 1709294400000}
	if err := tier.Save(ctx, path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := tier.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got.Data) != string(want.Data) || got.Timestamp != want.Timestamp {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	// Save overwrites
	want.Timestamp++
	tier.Save(ctx, path, want)
	got, _ = tier.Load(ctx, path)
	if got.Timestamp != want.Timestamp {
		t.Errorf("expected timestamp %d, got %d", want.Timestamp, got.Timestamp)
	}

	if err := tier.Delete(ctx, path); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := tier.Load(ctx, path); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestCacheTier_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	first.Save(ctx, "/data/plans.json", ports.CacheEntry{Data: []byte(`[]`), Timestamp: 42})
	first.Close()

	second, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to reopen cache: %v", err)
	}
	defer second.Close()

	got, err := second.Load(ctx, "/data/plans.json")
	if err != nil || got.Timestamp != 42 {
		t.Errorf("expected entry to survive reopen, got %+v, %v", got, err)
	}
}

func TestCacheTier_StatsAndClear(t *testing.T) {
	ctx := context.Background()
	tier := openTestTier(t)

	s, err := tier.Stats(ctx)
	if err != nil || s.Entries != 0 {
		t.Fatalf("expected empty stats, got %+v, %v", s, err)
	}

	tier.Save(ctx, "/a", ports.CacheEntry{Data: []byte(`{}`), Timestamp: 10})
	tier.Save(ctx, "/b", ports.CacheEntry{Data: []byte(`[1]`), Timestamp: 20})

	s, _ = tier.Stats(ctx)
	if s.Entries != 2 || s.Bytes != 5 || s.Oldest != 10 || s.Newest != 20 {
		t.Errorf("unexpected stats %+v", s)
	}

	n, err := tier.Clear(ctx)
	if err != nil || n != 2 {
		t.Errorf("expected 2 entries cleared, got %d, %v", n, err)
	}
}
