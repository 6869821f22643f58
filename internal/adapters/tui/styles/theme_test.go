package styles

import (
	"testing"

	"scriptorium/internal/domain"
)

func withPreferences(t *testing.T, p domain.Preferences) {
	t.Helper()
	Apply(p)
	t.Cleanup(func() { Apply(domain.DefaultPreferences()) })
}

func TestTextWidth(t *testing.T) {
	tests := []struct {
		name      string
		fontSize  int
		termWidth int
		want      int
	}{
		{"default font, wide terminal", 18, 200, 90},
		{"default font, narrow terminal", 18, 60, 60},
		{"largest font", 32, 200, 50},
		{"smallest font", 14, 200, 115},
		{"never below minimum", 32, 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.DefaultPreferences()
			p.FontSize = tt.fontSize
			withPreferences(t, p)
			if got := TextWidth(tt.termWidth); got != tt.want {
				t.Errorf("TextWidth(%d) = %d, want %d", tt.termWidth, got, tt.want)
			}
		})
	}
}

func TestVerseGap(t *testing.T) {
	tests := []struct {
		lineHeight float64
		want       int
	}{
		{1.2, 0},
		{1.6, 0},
		{1.8, 1},
		{2.5, 2},
	}
	for _, tt := range tests {
		p := domain.DefaultPreferences()
		p.LineHeight = tt.lineHeight
		withPreferences(t, p)
		if got := VerseGap(); got != tt.want {
			t.Errorf("VerseGap() at %.1f = %d, want %d", tt.lineHeight, got, tt.want)
		}
	}
}

func TestSpace(t *testing.T) {
	tests := []struct {
		name          string
		letter, words float64
		want          string
	}{
		{"no spacing", 0, 0, "In the"},
		{"word spacing", 0, 0.3, "In  the"},
		{"letter spacing", 0.3, 0, "I n  t h e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.DefaultPreferences()
			p.LetterSpacing = tt.letter
			p.WordSpacing = tt.words
			withPreferences(t, p)
			if got := Space("In the"); got != tt.want {
				t.Errorf("Space() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_ThemeChangesPalette(t *testing.T) {
	p := domain.DefaultPreferences()
	p.Theme = domain.ThemeSepia
	withPreferences(t, p)

	if Primary != PaletteFor(domain.ThemeSepia).Primary {
		t.Errorf("Primary = %v, want sepia primary", Primary)
	}
	if Current().Theme != domain.ThemeSepia {
		t.Errorf("Current().Theme = %s", Current().Theme)
	}
	if PaletteFor("neon") != PaletteFor(domain.ThemeLight) {
		t.Error("unknown theme should fall back to light")
	}
}
