package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scriptorium/internal/adapters/memory"
	"scriptorium/internal/app"
	"scriptorium/internal/application/content"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/application/state"
	"scriptorium/internal/events"
)

func newTestRuntime() *app.Runtime {
	fetcher := memory.NewFetcher(map[string]string{
		"/data/books/gen.json":             `{"book":"gen","name":"Genesis","chapters":[{"chapter":1,"verses":[{"verse":1,"text":"In the beginning"},{"verse":2,"text":"And the earth"}]}]}`,
		"/data/plan-content/thematic.json": `{"id":"thematic","days":[{"day":5,"bible":[{"book":"gen","chapter":5}],"egw":[{"label":"Cap. 2"}]}]}`,
		"/data/plans.json":                 `[{"id":"thematic","title":"Annual Thematic","type":"topical","days":365}]`,
		"/data/strong/strong-data.json":    `{"H7225":{"lemma":"reshit","definition":"beginning"}}`,
	})
	bus := events.NewBus()
	stores := state.Open(memory.NewStore(), bus, nil)
	library := content.NewLibrary(content.NewCache(fetcher, memory.NewCacheTier()))
	return &app.Runtime{
		Bus:     bus,
		Stores:  stores,
		Library: library,
		Plans:   progress.NewPlanController(stores.PlanProgress),
		Tracker: progress.NewTrackerController(stores.Tracker),
	}
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var sb strings.Builder
	for _, c := range res.Content {
		if text, ok := c.(mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String(), res.IsError
}

func TestReadChapter_RemembersPosition(t *testing.T) {
	rt := newTestRuntime()

	text, isErr := call(t, readChapterHandler(rt), map[string]any{"book": "gen", "chapter": 1})
	if isErr {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, "Genesis 1") || !strings.Contains(text, "In the beginning") {
		t.Errorf("unexpected chapter text: %q", text)
	}
	if got := rt.Stores.Bible.Get(); got.LastBook != "gen" || got.LastChapter != "1" {
		t.Errorf("position = %+v", got)
	}
}

func TestReadChapter_UnknownMode(t *testing.T) {
	rt := newTestRuntime()
	_, isErr := call(t, readChapterHandler(rt), map[string]any{"mode": "audio"})
	if !isErr {
		t.Error("expected a tool error")
	}
}

func TestToggleHighlight_ShowsInReadAndList(t *testing.T) {
	rt := newTestRuntime()

	text, isErr := call(t, toggleHighlightHandler(rt), map[string]any{"verse_id": "gen-1-2"})
	if isErr {
		t.Fatalf("unexpected error: %s", text)
	}

	text, _ = call(t, readChapterHandler(rt), map[string]any{"book": "gen", "chapter": 1})
	if !strings.Contains(text, "2 *  And the earth") {
		t.Errorf("highlight not marked: %q", text)
	}

	text, _ = call(t, highlightsHandler(rt), map[string]any{"book": "gen"})
	if strings.TrimSpace(text) != "gen-1-2" {
		t.Errorf("highlights = %q", text)
	}
}

func TestTogglePlanReading_CompletesDay(t *testing.T) {
	rt := newTestRuntime()
	h := togglePlanReadingHandler(rt)

	for _, key := range []string{"gen-5", "egw-Cap. 2"} {
		if text, isErr := call(t, h, map[string]any{"plan_id": "thematic", "day": 5, "reading_key": key}); isErr {
			t.Fatalf("toggle %s: %s", key, text)
		}
	}
	if !rt.Plans.Progress("thematic").IsDayComplete(5) {
		t.Error("expected day 5 complete")
	}

	text, _ := call(t, planDayHandler(rt), map[string]any{"plan_id": "thematic", "day": 5})
	if !strings.Contains(text, "(complete)") || !strings.Contains(text, "[x] gen-5") {
		t.Errorf("plan_day = %q", text)
	}
}

func TestToggleChapter_Validation(t *testing.T) {
	rt := newTestRuntime()

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{"valid", map[string]any{"book": "gen", "chapter": 3}, false},
		{"unknown book", map[string]any{"book": "xyz", "chapter": 1}, true},
		{"chapter out of range", map[string]any{"book": "gen", "chapter": 51}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isErr := call(t, toggleChapterHandler(rt), tt.args)
			if isErr != tt.wantErr {
				t.Errorf("isError = %v, want %v", isErr, tt.wantErr)
			}
		})
	}
	if !rt.Tracker.Progress().IsChapterRead("gen", 3) {
		t.Error("expected gen 3 read")
	}
}

func TestLookupStrong(t *testing.T) {
	rt := newTestRuntime()

	text, isErr := call(t, lookupStrongHandler(rt), map[string]any{"number": "h7225"})
	if isErr || !strings.Contains(text, "H7225") || !strings.Contains(text, "beginning") {
		t.Errorf("lookup = %q (error %v)", text, isErr)
	}
	if _, isErr := call(t, lookupStrongHandler(rt), map[string]any{}); !isErr {
		t.Error("expected error without number or query")
	}
}

func TestSetPreference_PublishesChange(t *testing.T) {
	rt := newTestRuntime()
	var got int
	rt.Bus.Subscribe(events.TopicPreferencesChanged, func(events.Event) { got++ })

	if text, isErr := call(t, setPreferenceHandler(rt), map[string]any{"name": "theme", "value": "dark"}); isErr {
		t.Fatalf("unexpected error: %s", text)
	}
	if rt.Stores.Preferences.Get().Theme != "dark" {
		t.Errorf("theme = %s", rt.Stores.Preferences.Get().Theme)
	}
	if got != 1 {
		t.Errorf("published %d changes, want 1", got)
	}
}
