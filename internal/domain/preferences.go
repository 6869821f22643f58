package domain

import "math"

// Theme is the reading color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeSepia Theme = "sepia"
)

// Themes lists the valid themes in cycle order
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSepia}

// FontFamily selects the reading typeface
type FontFamily string

const (
	FontSans     FontFamily = "sans"
	FontDyslexic FontFamily = "dyslexic"
)

// Accepted ranges for numeric preferences
const (
	MinFontSize       = 14
	MaxFontSize       = 32
	MinLineHeight     = 1.2
	MaxLineHeight     = 2.5
	MinSpacing        = 0.0
	MaxSpacing        = 0.5
	MinSpeechRate     = 0.5
	MaxSpeechRate     = 2.0
	DefaultFontSize   = 18
	DefaultLineHeight = 1.6
)

// Preferences holds display and accessibility settings.
// A value obtained through DefaultPreferences or Normalize is always fully
// populated and inside its documented ranges.
type Preferences struct {
	Theme         Theme      `json:"theme"`
	FontSize      int        `json:"fontSize"`
	LineHeight    float64    `json:"lineHeight"`
	LetterSpacing float64    `json:"letterSpacing"`
	WordSpacing   float64    `json:"wordSpacing"`
	FontFamily    FontFamily `json:"fontFamily"`
	RulerEnabled  bool       `json:"rulerEnabled"`
	SpeechRate    float64    `json:"speechRate"`
	SkipVerses    bool       `json:"skipVerses"`
	SkipFootnotes bool       `json:"skipFootnotes"`
}

// DefaultPreferences returns the documented defaults
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         ThemeLight,
		FontSize:      DefaultFontSize,
		LineHeight:    DefaultLineHeight,
		LetterSpacing: 0,
		WordSpacing:   0,
		FontFamily:    FontSans,
		RulerEnabled:  false,
		SpeechRate:    1.0,
		SkipVerses:    false,
		SkipFootnotes: false,
	}
}

// Normalize clamps every numeric field into range and replaces unknown
// enum values with their defaults.
func (p Preferences) Normalize() Preferences {
	def := DefaultPreferences()

	if !validTheme(p.Theme) {
		p.Theme = def.Theme
	}
	if p.FontFamily != FontSans && p.FontFamily != FontDyslexic {
		p.FontFamily = def.FontFamily
	}

	p.FontSize = clampInt(p.FontSize, MinFontSize, MaxFontSize)
	p.LineHeight = clampFloat(p.LineHeight, MinLineHeight, MaxLineHeight, def.LineHeight)
	p.LetterSpacing = clampFloat(p.LetterSpacing, MinSpacing, MaxSpacing, def.LetterSpacing)
	p.WordSpacing = clampFloat(p.WordSpacing, MinSpacing, MaxSpacing, def.WordSpacing)
	p.SpeechRate = clampFloat(p.SpeechRate, MinSpeechRate, MaxSpeechRate, def.SpeechRate)
	return p
}

// NextTheme cycles light -> dark -> sepia -> light
func (p Preferences) NextTheme() Theme {
	for i, t := range Themes {
		if t == p.Theme {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeLight
}

// PreferencesPatch is a partial update; nil fields are left unchanged
type PreferencesPatch struct {
	Theme         *Theme      `json:"theme,omitempty"`
	FontSize      *int        `json:"fontSize,omitempty"`
	LineHeight    *float64    `json:"lineHeight,omitempty"`
	LetterSpacing *float64    `json:"letterSpacing,omitempty"`
	WordSpacing   *float64    `json:"wordSpacing,omitempty"`
	FontFamily    *FontFamily `json:"fontFamily,omitempty"`
	RulerEnabled  *bool       `json:"rulerEnabled,omitempty"`
	SpeechRate    *float64    `json:"speechRate,omitempty"`
	SkipVerses    *bool       `json:"skipVerses,omitempty"`
	SkipFootnotes *bool       `json:"skipFootnotes,omitempty"`
}

// Apply merges the patch over p and normalizes the result
func (patch PreferencesPatch) Apply(p Preferences) Preferences {
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.FontSize != nil {
		p.FontSize = *patch.FontSize
	}
	if patch.LineHeight != nil {
		p.LineHeight = *patch.LineHeight
	}
	if patch.LetterSpacing != nil {
		p.LetterSpacing = *patch.LetterSpacing
	}
	if patch.WordSpacing != nil {
		p.WordSpacing = *patch.WordSpacing
	}
	if patch.FontFamily != nil {
		p.FontFamily = *patch.FontFamily
	}
	if patch.RulerEnabled != nil {
		p.RulerEnabled = *patch.RulerEnabled
	}
	if patch.SpeechRate != nil {
		p.SpeechRate = *patch.SpeechRate
	}
	if patch.SkipVerses != nil {
		p.SkipVerses = *patch.SkipVerses
	}
	if patch.SkipFootnotes != nil {
		p.SkipFootnotes = *patch.SkipFootnotes
	}
	return p.Normalize()
}

func validTheme(t Theme) bool {
	for _, v := range Themes {
		if v == t {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampFloat falls back to def for NaN
func clampFloat(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Min(math.Max(v, lo), hi)
}
