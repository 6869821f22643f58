package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scriptorium/internal/config"
	"scriptorium/internal/domain"
	"scriptorium/internal/events"
)

func testConfig(t *testing.T, url string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataDir:         dir,
		ContentURL:      url,
		CacheTTL:        config.DefaultCacheTTL,
		PersistentCache: true,
		HTTPTimeout:     5 * time.Second,
		LogFile:         dir + "/scriptorium.log",
	}
}

func TestOpen_WiresEverything(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[{"id":"thematic","title":"Annual Thematic","days":365}]`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	cfg := testConfig(t, srv.URL)
	rt, err := Open(cfg, NewLogger(&logs))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rt.Close()

	if rt.Tier == nil {
		t.Fatalf("expected a persistent cache tier, log: %s", logs.String())
	}
	for i := 0; i < 2; i++ {
		plans, err := rt.Library.Plans(context.Background())
		if err != nil || len(plans) != 1 {
			t.Fatalf("Plans() = %v, %v", plans, err)
		}
	}
	if hits != 1 {
		t.Errorf("expected 1 request, got %d", hits)
	}

	var published int
	rt.Bus.Subscribe(events.TopicPreferencesChanged, func(events.Event) { published++ })
	rt.Stores.Preferences.Reset()
	if published != 1 {
		t.Errorf("expected preference change on the bus, got %d", published)
	}

	rt.Stores.Bible.Set(domain.Position{LastBook: "exo", LastChapter: "3"})
	reopened, err := Open(cfg, NewLogger(&logs))
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	if got := reopened.Stores.Navigation(domain.ModeBible).Get(); got.LastBook != "exo" {
		t.Errorf("position not persisted: %+v", got)
	}
}

func TestOpen_WithoutPersistentCache(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:0")
	cfg.PersistentCache = false

	rt, err := Open(cfg, NewLogger(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if rt.Tier != nil {
		t.Error("expected no cache tier")
	}
	if err := rt.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
