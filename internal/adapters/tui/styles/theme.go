package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scriptorium/internal/domain"
)

// Palette is the set of colors of one reading theme
type Palette struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Mark       lipgloss.Color
	Ruler      lipgloss.Color
}

var palettes = map[domain.Theme]Palette{
	domain.ThemeLight: {
		Foreground: lipgloss.Color("#1F2937"),
		Background: lipgloss.Color("#FFFFFF"),
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#10B981"), // Green
		Muted:      lipgloss.Color("#6B7280"), // Gray
		Warning:    lipgloss.Color("#F59E0B"), // Amber
		Error:      lipgloss.Color("#EF4444"), // Red
		Mark:       lipgloss.Color("#FEF08A"),
		Ruler:      lipgloss.Color("#E0E7FF"),
	},
	domain.ThemeDark: {
		Foreground: lipgloss.Color("#E5E7EB"),
		Background: lipgloss.Color("#111827"),
		Primary:    lipgloss.Color("#A78BFA"),
		Secondary:  lipgloss.Color("#34D399"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Warning:    lipgloss.Color("#FBBF24"),
		Error:      lipgloss.Color("#F87171"),
		Mark:       lipgloss.Color("#854D0E"),
		Ruler:      lipgloss.Color("#312E81"),
	},
	domain.ThemeSepia: {
		Foreground: lipgloss.Color("#433422"),
		Background: lipgloss.Color("#F4ECD8"),
		Primary:    lipgloss.Color("#8B5A2B"),
		Secondary:  lipgloss.Color("#6B8E23"),
		Muted:      lipgloss.Color("#8C7B65"),
		Warning:    lipgloss.Color("#B8860B"),
		Error:      lipgloss.Color("#A52A2A"),
		Mark:       lipgloss.Color("#E8D08A"),
		Ruler:      lipgloss.Color("#E6D5B0"),
	},
}

// PaletteFor returns the palette of a theme, the light one for unknown themes
func PaletteFor(t domain.Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[domain.ThemeLight]
}

var (
	// Colors of the current theme
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Reading text
	VerseNumber      lipgloss.Style
	VerseText        lipgloss.Style
	VerseHighlighted lipgloss.Style
	VerseRuler       lipgloss.Style
	VerseCursor      lipgloss.Style
	Footnote         lipgloss.Style
	Original         lipgloss.Style
	StrongRef        lipgloss.Style

	// Sidebar and lists
	Sidebar      lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	Favorite     lipgloss.Style

	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusText lipgloss.Style

	InputLabel   lipgloss.Style
	InputField   lipgloss.Style
	InputFocused lipgloss.Style

	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	Success  lipgloss.Style
	ErrorMsg lipgloss.Style
	Toast    lipgloss.Style
	Panel    lipgloss.Style

	Progress      lipgloss.Style
	ProgressEmpty lipgloss.Style

	MutedText lipgloss.Style
)

// current holds the preferences the styles were built from
var current = domain.DefaultPreferences()

func init() {
	Apply(domain.DefaultPreferences())
}

// Apply rebuilds every style for the given preferences. It runs on the
// bubbletea goroutine, so no locking is needed.
func Apply(p domain.Preferences) {
	current = p
	pal := PaletteFor(p.Theme)

	Primary = pal.Primary
	Secondary = pal.Secondary
	Muted = pal.Muted
	Warning = pal.Warning
	Error = pal.Error

	App = lipgloss.NewStyle().Padding(1, 2)
	Title = lipgloss.NewStyle().Bold(true).Foreground(pal.Primary).MarginBottom(1)
	Subtitle = lipgloss.NewStyle().Foreground(pal.Muted).Italic(true)

	VerseNumber = lipgloss.NewStyle().Foreground(pal.Primary).Bold(true)
	VerseText = lipgloss.NewStyle().Foreground(pal.Foreground)
	VerseHighlighted = lipgloss.NewStyle().Foreground(pal.Foreground).Background(pal.Mark)
	VerseRuler = lipgloss.NewStyle().Foreground(pal.Foreground).Background(pal.Ruler)
	VerseCursor = lipgloss.NewStyle().Foreground(pal.Primary).SetString("▌")
	Footnote = lipgloss.NewStyle().Foreground(pal.Muted).Italic(true)
	Original = lipgloss.NewStyle().Foreground(pal.Foreground).Bold(true)
	StrongRef = lipgloss.NewStyle().Foreground(pal.Secondary)
	if p.FontFamily == domain.FontDyslexic {
		// heavier strokes stand in for the dyslexia-friendly face
		VerseText = VerseText.Bold(true)
		VerseHighlighted = VerseHighlighted.Bold(true)
		VerseRuler = VerseRuler.Bold(true)
	}

	Sidebar = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(pal.Muted).
		PaddingRight(1).
		MarginRight(1)
	ListItem = lipgloss.NewStyle()
	ListSelected = lipgloss.NewStyle().Background(pal.Primary).Foreground(White).Bold(true)
	Favorite = lipgloss.NewStyle().Foreground(pal.Warning)

	StatusBar = lipgloss.NewStyle().Background(lipgloss.Color("#1F2937")).Foreground(White).Padding(0, 1)
	StatusKey = lipgloss.NewStyle().Background(pal.Primary).Foreground(White).Padding(0, 1).MarginRight(1)
	StatusText = lipgloss.NewStyle().Foreground(pal.Muted)

	InputLabel = lipgloss.NewStyle().Foreground(pal.Secondary).Bold(true)
	InputField = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(pal.Primary).Padding(0, 1)
	InputFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(pal.Secondary).Padding(0, 1)

	HelpKey = lipgloss.NewStyle().Foreground(pal.Primary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(pal.Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(pal.Muted).SetString(" • ")

	Success = lipgloss.NewStyle().Foreground(pal.Secondary).Bold(true)
	ErrorMsg = lipgloss.NewStyle().Foreground(pal.Error).Bold(true)
	Toast = lipgloss.NewStyle().Background(pal.Secondary).Foreground(White).Bold(true).Padding(0, 1)
	Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(pal.Warning).Padding(1, 2)

	Progress = lipgloss.NewStyle().Foreground(pal.Secondary)
	ProgressEmpty = lipgloss.NewStyle().Foreground(pal.Muted)

	MutedText = lipgloss.NewStyle().Foreground(pal.Muted)
}

// Current returns the preferences the styles were last built from
func Current() domain.Preferences {
	return current
}

// TextWidth is the reading column width for a terminal width. Larger font
// sizes give a narrower column, the way a larger font fits fewer
// characters on a line.
func TextWidth(termWidth int) int {
	width := 90 * domain.DefaultFontSize / current.FontSize
	return max(20, min(width, termWidth))
}

// VerseGap is the number of blank lines between verses for the line height
func VerseGap() int {
	switch {
	case current.LineHeight >= 2.2:
		return 2
	case current.LineHeight >= 1.8:
		return 1
	default:
		return 0
	}
}

// Space applies letter and word spacing to text
func Space(text string) string {
	if current.LetterSpacing >= 0.25 {
		var b strings.Builder
		for i, r := range text {
			if i > 0 && r != ' ' {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
		}
		text = b.String()
	}
	if current.WordSpacing >= 0.25 {
		text = strings.ReplaceAll(text, " ", "  ")
	}
	return text
}

// ProgressBar renders pct (0-100) as a bar of width cells
func ProgressBar(pct, width int) string {
	pct = max(0, min(pct, 100))
	filled := pct * width / 100
	return Progress.Render(strings.Repeat("█", filled)) + ProgressEmpty.Render(strings.Repeat("░", width-filled))
}
