package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"scriptorium/internal/adapters/memory"
	"scriptorium/internal/app"
	"scriptorium/internal/application/content"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
	"scriptorium/internal/events"
)

func newTestRuntime() *app.Runtime {
	fetcher := memory.NewFetcher(map[string]string{
		"/data/books/gen.json":             `{"book":"gen","name":"Genesis","chapters":[{"chapter":1,"verses":[{"verse":1,"text":"In the beginning"},{"verse":2,"text":"And the earth"}]}]}`,
		"/data/plan-content/thematic.json": `{"id":"thematic","days":[{"day":1,"bible":[{"book":"gen","chapter":1}]}]}`,
		"/data/plans.json":                 `[{"id":"thematic","title":"Annual Thematic","type":"topical","days":365},{"id":"nt","title":"New Testament","type":"canonical","days":260}]`,
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

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderChapter(t *testing.T) {
	d := chapterData{
		bookName: "Genesis",
		verses: []domain.Verse{
			{Number: 1, Text: "In the beginning", Footnotes: []string{"Or when"}},
			{Number: 2, Text: "And the earth"},
		},
	}

	tests := []struct {
		name    string
		prefs   func(*domain.Preferences)
		want    []string
		notWant []string
	}{
		{
			name: "defaults",
			want: []string{"  1 In the beginning", "[Or when]", "  2 And the earth"},
		},
		{
			name:    "skip footnotes",
			prefs:   func(p *domain.Preferences) { p.SkipFootnotes = true },
			want:    []string{"In the beginning"},
			notWant: []string{"[Or when]"},
		},
		{
			name:    "skip verse numbers",
			prefs:   func(p *domain.Preferences) { p.SkipVerses = true },
			want:    []string{"    In the beginning"},
			notWant: []string{"1 In the beginning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := domain.DefaultPreferences()
			if tt.prefs != nil {
				tt.prefs(&prefs)
			}
			out, offsets := renderChapter(d, 80, nil, -1, prefs)

			if len(offsets) != 2 || offsets[0] != 0 || offsets[1] <= offsets[0] {
				t.Errorf("offsets = %v, want two increasing line numbers from 0", offsets)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRenderChapter_CursorMarker(t *testing.T) {
	d := chapterData{verses: []domain.Verse{{Number: 1, Text: "a"}, {Number: 2, Text: "b"}}}
	out, _ := renderChapter(d, 80, nil, 1, domain.DefaultPreferences())
	lines := strings.Split(out, "\n")
	if strings.HasPrefix(lines[0], "▌") {
		t.Errorf("first verse should not carry the cursor: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "▌") {
		t.Errorf("second verse should carry the cursor: %q", lines[1])
	}
}

func TestLoadGuard(t *testing.T) {
	var g loadGuard
	first := g.Next()
	second := g.Next()

	if g.Current(first) {
		t.Error("superseded load reported current")
	}
	if !g.Current(second) {
		t.Error("latest load not reported current")
	}
}

func TestToast_NewMessageRestartsTimer(t *testing.T) {
	toast := NewToast(progress.ToastDuration)
	if toast.Show("first") == nil {
		t.Fatal("Show should schedule its removal")
	}
	toast.Show("second")

	toast.Update(toastExpiredMsg{seq: 1})
	if !toast.Visible() || toast.Text != "second" {
		t.Fatalf("stale timer hid the toast: %+v", toast)
	}

	toast.Update(toastExpiredMsg{seq: 2})
	if toast.Visible() {
		t.Error("toast still visible after its timer fired")
	}
}

func TestNextType(t *testing.T) {
	types := []string{"canonical", "topical"}
	tests := []struct {
		cur  string
		want string
	}{
		{"", "canonical"},
		{"canonical", "topical"},
		{"topical", ""},
		{"unknown", "canonical"},
	}
	for _, tt := range tests {
		if got := nextType(types, tt.cur); got != tt.want {
			t.Errorf("nextType(%q) = %q, want %q", tt.cur, got, tt.want)
		}
	}
}

func TestFirstOpenDay(t *testing.T) {
	p := domain.PlanProgress{CompletedDays: []int{1, 2, 4}}
	if got := firstOpenDay(p, 10); got != 3 {
		t.Errorf("firstOpenDay = %d, want 3", got)
	}
	all := domain.PlanProgress{CompletedDays: []int{1, 2}}
	if got := firstOpenDay(all, 2); got != 2 {
		t.Errorf("firstOpenDay on a finished plan = %d, want 2", got)
	}
}

func TestPaginator_SetPageSize(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(66)
	p.SetCursor(25)
	if p.CurrentPage() != 3 {
		t.Fatalf("CurrentPage = %d, want 3", p.CurrentPage())
	}

	p.SetPageSize(30)
	if p.Cursor() != 25 || p.CurrentPage() != 1 {
		t.Errorf("after resize cursor=%d page=%d, want 25 on page 1", p.Cursor(), p.CurrentPage())
	}
	if p.TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages())
	}
}

func TestConfirmationModel(t *testing.T) {
	m := NewConfirmationModel()
	if answered, _ := m.HandleKeyMsg(keyRunes("y")); answered {
		t.Fatal("closed prompt answered a key")
	}

	m.Ask("Clear?")
	if answered, _ := m.HandleKeyMsg(keyRunes("z")); answered || !m.Active() {
		t.Fatal("unrelated key closed the prompt")
	}
	answered, confirmed := m.HandleKeyMsg(keyRunes("y"))
	if !answered || !confirmed || m.Active() {
		t.Errorf("y: answered=%v confirmed=%v active=%v", answered, confirmed, m.Active())
	}

	m.Ask("Clear?")
	answered, confirmed = m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if !answered || confirmed {
		t.Errorf("esc: answered=%v confirmed=%v", answered, confirmed)
	}
}

func TestTrackerModel_ToggleAndReset(t *testing.T) {
	rt := newTestRuntime()
	m := NewTrackerModel(rt)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // open Genesis
	if m.book == nil || m.book.Code != "gen" || m.chapter != 1 {
		t.Fatalf("expected Genesis 1 open, got %+v ch %d", m.book, m.chapter)
	}

	m.Update(keyRunes("x"))
	if !rt.Tracker.Progress().IsChapterRead("gen", 1) {
		t.Fatal("chapter not marked read")
	}
	if !m.toast.Visible() {
		t.Error("toggle should show a toast")
	}

	m.Update(keyRunes("l"))
	if m.chapter != 2 {
		t.Errorf("chapter = %d after right, want 2", m.chapter)
	}

	m.Update(keyRunes("R"))
	if !m.Capturing() {
		t.Fatal("reset should ask for confirmation")
	}
	m.Update(keyRunes("n"))
	if rt.Tracker.Progress().ReadChapters() != 1 {
		t.Fatal("declined reset cleared progress")
	}

	m.Update(keyRunes("R"))
	m.Update(keyRunes("y"))
	if rt.Tracker.Progress().ReadChapters() != 0 {
		t.Error("confirmed reset kept progress")
	}
}

func TestPlansModel_ToggleReadingAndOpen(t *testing.T) {
	rt := newTestRuntime()
	m := NewPlansModel(rt)

	plan := domain.Plan{ID: "thematic", Title: "Annual Thematic", Days: 365}
	m.openPlan(plan)
	c, err := rt.Library.PlanContent(t.Context(), "thematic")
	if err != nil {
		t.Fatalf("PlanContent: %v", err)
	}
	m.Update(planContentLoadedMsg{gen: m.dayGuard.gen, plan: plan, content: c})
	if m.day != 1 || m.currentDay() == nil {
		t.Fatalf("day 1 not loaded: day=%d", m.day)
	}

	m.Update(keyRunes("x"))
	if !rt.Plans.Progress("thematic").IsDayComplete(1) {
		t.Fatal("toggling the only reading should complete the day")
	}

	_, cmd := m.Update(keyRunes("o"))
	if cmd == nil {
		t.Fatal("open reading returned no command")
	}
	msg, ok := cmd().(OpenReadingMsg)
	if !ok || msg.Reading.Book != "gen" || msg.Reading.Chapter != 1 {
		t.Errorf("open reading = %#v", msg)
	}
}

func TestPlansModel_StaleLoadIgnored(t *testing.T) {
	rt := newTestRuntime()
	m := NewPlansModel(rt)

	m.loadPlans()
	stale := m.listGuard.gen
	m.loadPlans()

	m.Update(plansLoadedMsg{gen: stale, plans: []domain.Plan{{ID: "old"}}})
	if len(m.plans) != 0 || !m.loading {
		t.Fatal("stale response was applied")
	}
	m.Update(plansLoadedMsg{gen: m.listGuard.gen, plans: []domain.Plan{{ID: "nt"}}})
	if len(m.plans) != 1 || m.loading {
		t.Errorf("current response not applied: %+v", m.plans)
	}
}

func TestPlansModel_FavoritesFirst(t *testing.T) {
	rt := newTestRuntime()
	m := NewPlansModel(rt)
	rt.Stores.FavoritePlans.Toggle("nt")

	got := m.sortedPlans([]domain.Plan{{ID: "thematic"}, {ID: "nt"}})
	if got[0].ID != "nt" {
		t.Errorf("favorite not first: %+v", got)
	}
}

func TestSettingsModel_StepsPreferences(t *testing.T) {
	rt := newTestRuntime()
	m := NewSettingsModel(rt)

	m.Update(keyRunes("h")) // theme, backwards from light
	if got := rt.Stores.Preferences.Get().Theme; got != domain.ThemeSepia {
		t.Errorf("theme = %q, want sepia", got)
	}

	m.Update(keyRunes("j"))
	m.Update(keyRunes("l"))
	if got := rt.Stores.Preferences.Get().FontSize; got != domain.DefaultFontSize+1 {
		t.Errorf("font size = %d, want %d", got, domain.DefaultFontSize+1)
	}

	m.Update(keyRunes("R"))
	m.Update(keyRunes("y"))
	if got := rt.Stores.Preferences.Get(); got != domain.DefaultPreferences() {
		t.Errorf("preferences not reset: %+v", got)
	}
}
