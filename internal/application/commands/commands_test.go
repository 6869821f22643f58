package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scriptorium/internal/application"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/domain"
)

func TestToggleHighlightCommand(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := NewToggleHighlightCommand(env.stores.Highlights, "GEN-1-1").Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.Highlighted || res.VerseID != "gen-1-1" || res.Message != "Highlighted Genesis 1:1" {
		t.Errorf("unexpected result %+v", res)
	}

	res, _ = NewToggleHighlightCommand(env.stores.Highlights, "gen-1-1").Execute(ctx)
	if res.Highlighted {
		t.Error("expected second toggle to remove the highlight")
	}
}

func TestToggleHighlightCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		verseID string
		errMsg  string
	}{
		{name: "empty", verseID: "", errMsg: "verse ID is required"},
		{name: "unknown book", verseID: "xyz-1-1", errMsg: "unknown book"},
		{name: "chapter out of range", verseID: "gen-51-1", errMsg: "chapters 1-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewToggleHighlightCommand(nil, tt.verseID).Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestTogglePlanDayCommand(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	out, err := NewTogglePlanDayCommand(env.plans, env.library, "thematic", 5).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Progress.IsDayComplete(5) || len(out.Progress.CompletedReadings(5)) != 2 {
		t.Errorf("unexpected progress %+v", out.Progress)
	}

	_, err = NewTogglePlanDayCommand(env.plans, env.library, "thematic", 6).Execute(ctx)
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing day, got %v", err)
	}
}

func TestTogglePlanReadingCommand(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	out, err := NewTogglePlanReadingCommand(env.plans, env.library, "thematic", 5, "egw-Cap. 2").Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Progress.IsDayComplete(5) {
		t.Error("day should stay pending with one reading left")
	}

	_, err = NewTogglePlanReadingCommand(env.plans, env.library, "thematic", 5, "exo-1").Execute(ctx)
	var verr *application.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for an unknown key, got %v", err)
	}
}

func TestTogglePlanFlagCommand(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := NewTogglePlanFlagCommand(env.stores.FavoritePlans, env.library, "favorites", "thematic").Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.On || res.Message != "Added Annual Thematic to favorites" {
		t.Errorf("unexpected result %+v", res)
	}
	if !env.stores.FavoritePlans.Has("thematic") {
		t.Error("expected thematic in favorites")
	}

	if _, err := NewTogglePlanFlagCommand(env.stores.SavedPlans, env.library, "saved plans", "nope").Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound for an unknown plan, got %v", err)
	}
}

func TestToggleChapterCommand(t *testing.T) {
	env := newTestEnv()

	res, err := NewToggleChapterCommand(env.tracker, "Gen", 25).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.Read || res.Book != "gen" || res.BookProgress != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Message != "Genesis 25 marked read (Genesis 2%)" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestResetTrackerCommand(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	NewToggleChapterCommand(env.tracker, "gen", 1).Execute(ctx)

	_, err := NewResetTrackerCommand(env.tracker, nil).Execute(ctx)
	if !errors.Is(err, application.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}

	yes := progress.ConfirmFunc(func(string) (bool, error) { return true, nil })
	res, err := NewResetTrackerCommand(env.tracker, yes).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Message != "Cleared 1 chapters from the tracker" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestSetPreferenceCommand(t *testing.T) {
	tests := []struct {
		name    string
		pref    string
		value   string
		wantErr bool
		check   func(domain.Preferences) bool
	}{
		{name: "theme", pref: "theme", value: "Dark", check: func(p domain.Preferences) bool { return p.Theme == domain.ThemeDark }},
		{name: "font size with unit", pref: "fontsize", value: "20px", check: func(p domain.Preferences) bool { return p.FontSize == 20 }},
		{name: "font size clamped", pref: "fontSize", value: "100", check: func(p domain.Preferences) bool { return p.FontSize == domain.MaxFontSize }},
		{name: "speech rate", pref: "speechRate", value: "1.25", check: func(p domain.Preferences) bool { return p.SpeechRate == 1.25 }},
		{name: "ruler", pref: "rulerEnabled", value: "true", check: func(p domain.Preferences) bool { return p.RulerEnabled }},
		{name: "unknown theme", pref: "theme", value: "neon", wantErr: true},
		{name: "bad bool", pref: "skipVerses", value: "maybe", wantErr: true},
		{name: "unknown name", pref: "volume", value: "11", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			res, err := NewSetPreferenceCommand(env.stores.Preferences, tt.pref, tt.value).Execute(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if env.stores.Preferences.Get() != domain.DefaultPreferences() {
					t.Error("preferences changed despite the error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !tt.check(res.Preferences) {
				t.Errorf("unexpected preferences %+v", res.Preferences)
			}
		})
	}
}

func TestResetPreferencesCommand(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	NewSetPreferenceCommand(env.stores.Preferences, "theme", "sepia").Execute(ctx)

	if _, err := NewResetPreferencesCommand(env.stores.Preferences).Execute(ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if env.stores.Preferences.Get() != domain.DefaultPreferences() {
		t.Error("expected defaults after reset")
	}
}

func TestReadChapterCommand(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.stores.Highlights.Toggle("gen-1-2")

	res, err := NewReadChapterCommand(env.library, env.stores, domain.ModeBible, "", 0, "2-3").Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Position != (domain.Resolved{Book: "gen", Chapter: 1, Verse: 1}) {
		t.Errorf("unexpected position %+v", res.Position)
	}
	if len(res.Verses) != 2 || res.Verses[0].Number != 2 {
		t.Errorf("unexpected verses %+v", res.Verses)
	}
	if len(res.Highlighted) != 1 || res.Highlighted[0] != 2 {
		t.Errorf("unexpected highlights %v", res.Highlighted)
	}
	if got := env.stores.Bible.Get(); got.LastBook != "gen" || got.LastChapter != "1" {
		t.Errorf("position not remembered: %+v", got)
	}

	com, err := NewReadChapterCommand(env.library, env.stores, domain.ModeCommentary, "gen", 1, "").Execute(ctx)
	if err != nil || com.Commentary.Intro != "Creation" {
		t.Errorf("commentary = %+v, %v", com, err)
	}

	_, err = NewReadChapterCommand(env.library, env.stores, domain.ModeBible, "exo", 1, "").Execute(ctx)
	if !application.IsUnavailable(err) {
		t.Errorf("expected unavailable error for exo, got %v", err)
	}
	if env.stores.Bible.Get().LastBook != "gen" {
		t.Error("failed read should not move the remembered position")
	}
}
