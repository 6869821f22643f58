package state

import (
	"encoding/json"
	"testing"

	"scriptorium/internal/adapters/memory"
	"scriptorium/internal/domain"
	"scriptorium/internal/events"
)

func TestPreferenceStore_Load(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   func(domain.Preferences) bool
	}{
		{
			name:   "malformed json yields defaults",
			stored: "{{{",
			want:   func(p domain.Preferences) bool { return p == domain.DefaultPreferences() },
		},
		{
			name:   "partial object is backfilled",
			stored: `{"theme":"sepia"}`,
			want: func(p domain.Preferences) bool {
				return p.Theme == domain.ThemeSepia && p.FontSize == domain.DefaultFontSize
			},
		},
		{
			name:   "out of range values are clamped",
			stored: `{"fontSize":99,"speechRate":0.1,"theme":"neon"}`,
			want: func(p domain.Preferences) bool {
				return p.FontSize == domain.MaxFontSize && p.SpeechRate == domain.MinSpeechRate && p.Theme == domain.ThemeLight
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			store.Seed(KeyPreferences, []byte(tt.stored))
			s := NewPreferenceStore(store, nil, nil)
			if got := s.Get(); !tt.want(got) {
				t.Errorf("Get() = %+v", got)
			}
		})
	}
}

func TestPreferenceStore_PatchAppliesAndPublishes(t *testing.T) {
	store := memory.NewStore()
	bus := events.NewBus()
	s := NewPreferenceStore(store, bus, nil)

	var applied []domain.Preferences
	s.AddApplier(ApplierFunc(func(p domain.Preferences) { applied = append(applied, p) }))

	var published int
	bus.Subscribe(events.TopicPreferencesChanged, func(ev events.Event) {
		if p, ok := ev.Payload.(domain.Preferences); ok && p.Theme == domain.ThemeDark {
			published++
		}
	})

	theme := domain.ThemeDark
	if res := s.Patch(domain.PreferencesPatch{Theme: &theme}); !res.OK() {
		t.Fatalf("Patch() error = %v", res.Err)
	}

	if len(applied) != 2 || applied[1].Theme != domain.ThemeDark {
		t.Errorf("applier calls = %+v, want initial and dark", applied)
	}
	if published != 1 {
		t.Errorf("published %d events, want 1", published)
	}

	data, _ := store.Read(KeyPreferences)
	var stored domain.Preferences
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("stored value is not json: %v", err)
	}
	if stored.Theme != domain.ThemeDark {
		t.Errorf("stored theme = %q, want dark", stored.Theme)
	}
}

func TestPreferenceStore_ResetRestoresDefaults(t *testing.T) {
	store := memory.NewStore()
	s := NewPreferenceStore(store, nil, nil)

	s.Set(domain.Preferences{Theme: domain.ThemeSepia, FontSize: 30, LineHeight: 2, FontFamily: domain.FontDyslexic, SpeechRate: 1.5, SkipVerses: true})
	s.Reset()

	if got := s.Get(); got != domain.DefaultPreferences() {
		t.Errorf("Get() after Reset = %+v, want defaults", got)
	}
	reloaded := NewPreferenceStore(store, nil, nil)
	if got := reloaded.Get(); got != domain.DefaultPreferences() {
		t.Errorf("reloaded = %+v, want defaults", got)
	}
}
