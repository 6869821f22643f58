package views

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scriptorium/internal/adapters/tui/styles"
	"scriptorium/internal/app"
	"scriptorium/internal/application/commands"
	"scriptorium/internal/domain"
)

// SettingsKeyMap defines key bindings for the settings view
type SettingsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Reset    key.Binding
}

var SettingsKeys = SettingsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Increase: key.NewBinding(
		key.WithKeys("l", "right", "+", " ", "enter"),
		key.WithHelp("l/→", "next value"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("h", "left", "-"),
		key.WithHelp("h/←", "previous value"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "restore defaults"),
	),
}

// setting is one editable row. step returns the text value one step in
// direction dir (+1 or -1) from the current preferences.
type setting struct {
	name    string
	label   string
	display func(domain.Preferences) string
	step    func(p domain.Preferences, dir int) string
}

func floatStep(get func(domain.Preferences) float64, delta float64) func(domain.Preferences, int) string {
	return func(p domain.Preferences, dir int) string {
		return strconv.FormatFloat(get(p)+float64(dir)*delta, 'f', 2, 64)
	}
}

func boolStep(get func(domain.Preferences) bool) func(domain.Preferences, int) string {
	return func(p domain.Preferences, _ int) string {
		return strconv.FormatBool(!get(p))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var settings = []setting{
	{
		name:    "theme",
		label:   "Theme",
		display: func(p domain.Preferences) string { return string(p.Theme) },
		step: func(p domain.Preferences, dir int) string {
			i := slices.Index(domain.Themes, p.Theme)
			n := len(domain.Themes)
			return string(domain.Themes[((i+dir)%n+n)%n])
		},
	},
	{
		name:    "fontSize",
		label:   "Font size",
		display: func(p domain.Preferences) string { return fmt.Sprintf("%dpx", p.FontSize) },
		step: func(p domain.Preferences, dir int) string {
			return strconv.Itoa(p.FontSize + dir)
		},
	},
	{
		name:    "lineHeight",
		label:   "Line height",
		display: func(p domain.Preferences) string { return fmt.Sprintf("%.1f", p.LineHeight) },
		step:    floatStep(func(p domain.Preferences) float64 { return p.LineHeight }, 0.1),
	},
	{
		name:    "letterSpacing",
		label:   "Letter spacing",
		display: func(p domain.Preferences) string { return fmt.Sprintf("%.2f", p.LetterSpacing) },
		step:    floatStep(func(p domain.Preferences) float64 { return p.LetterSpacing }, 0.05),
	},
	{
		name:    "wordSpacing",
		label:   "Word spacing",
		display: func(p domain.Preferences) string { return fmt.Sprintf("%.2f", p.WordSpacing) },
		step:    floatStep(func(p domain.Preferences) float64 { return p.WordSpacing }, 0.05),
	},
	{
		name:    "fontFamily",
		label:   "Font",
		display: func(p domain.Preferences) string { return string(p.FontFamily) },
		step: func(p domain.Preferences, _ int) string {
			if p.FontFamily == domain.FontDyslexic {
				return string(domain.FontSans)
			}
			return string(domain.FontDyslexic)
		},
	},
	{
		name:    "rulerEnabled",
		label:   "Reading ruler",
		display: func(p domain.Preferences) string { return onOff(p.RulerEnabled) },
		step:    boolStep(func(p domain.Preferences) bool { return p.RulerEnabled }),
	},
	{
		name:    "speechRate",
		label:   "Speech rate",
		display: func(p domain.Preferences) string { return fmt.Sprintf("%.1fx", p.SpeechRate) },
		step:    floatStep(func(p domain.Preferences) float64 { return p.SpeechRate }, 0.1),
	},
	{
		name:    "skipVerses",
		label:   "Hide verse numbers",
		display: func(p domain.Preferences) string { return onOff(p.SkipVerses) },
		step:    boolStep(func(p domain.Preferences) bool { return p.SkipVerses }),
	},
	{
		name:    "skipFootnotes",
		label:   "Hide footnotes",
		display: func(p domain.Preferences) string { return onOff(p.SkipFootnotes) },
		step:    boolStep(func(p domain.Preferences) bool { return p.SkipFootnotes }),
	},
}

// SettingsModel edits the reading preferences. Every change is written
// through the preference store, which re-applies the theme.
type SettingsModel struct {
	ViewState
	rt      *app.Runtime
	cursor  int
	confirm ConfirmationModel
}

// NewSettingsModel creates the settings view
func NewSettingsModel(rt *app.Runtime) *SettingsModel {
	return &SettingsModel{
		rt:      rt,
		confirm: NewConfirmationModel(),
	}
}

// Init does nothing
func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

// Capturing reports whether the reset prompt is open
func (m *SettingsModel) Capturing() bool {
	return m.confirm.Active()
}

// Update handles messages for the settings view
func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		m.ClearMessage()
		if answered, confirmed := m.confirm.HandleKeyMsg(msg); answered {
			if confirmed {
				m.reset()
			}
			return m, nil
		}
		if m.confirm.Active() {
			return m, nil
		}

		switch {
		case key.Matches(msg, SettingsKeys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, SettingsKeys.Down):
			m.cursor = min(len(settings)-1, m.cursor+1)
		case key.Matches(msg, SettingsKeys.Increase):
			m.change(+1)
		case key.Matches(msg, SettingsKeys.Decrease):
			m.change(-1)
		case key.Matches(msg, SettingsKeys.Reset):
			m.confirm.Ask("Restore the default preferences?")
		}
	}
	return m, nil
}

func (m *SettingsModel) change(dir int) {
	s := settings[m.cursor]
	store := m.rt.Stores.Preferences
	value := s.step(store.Get(), dir)
	res, err := commands.NewSetPreferenceCommand(store, s.name, value).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	if !res.Persist.OK() {
		m.SetMessage("Not saved: "+res.Persist.Err.Error(), true)
	}
}

func (m *SettingsModel) reset() {
	res, err := commands.NewResetPreferencesCommand(m.rt.Stores.Preferences).Execute(context.Background())
	switch {
	case err != nil:
		m.SetMessage(err.Error(), true)
	case !res.Persist.OK():
		m.SetMessage("Not saved: "+res.Persist.Err.Error(), true)
	default:
		m.SetMessage(res.Message, false)
	}
}

// View renders the settings view
func (m *SettingsModel) View() string {
	p := m.rt.Stores.Preferences.Get()
	v := NewViewBuilder().Title("Settings")

	for i, s := range settings {
		label := padRight(s.label, 20)
		value := s.display(p)
		if i == m.cursor {
			label = styles.ListSelected.Render(label)
			value = "‹ " + value + " ›"
		}
		v.Line(label + "  " + value)
	}

	v.BlankLine()
	v.Line(styles.VerseNumber.Render("1") + " " + styles.VerseText.Render(styles.Space("In the beginning God created the heaven and the earth.")))
	v.Muted(fmt.Sprintf("Text width %d columns", styles.TextWidth(m.Width)))

	v.BlankLine()
	if m.confirm.Active() {
		v.Line(m.confirm.View())
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(SettingsKeys.Up, SettingsKeys.Down, SettingsKeys.Increase, SettingsKeys.Decrease, SettingsKeys.Reset)
	return v.String()
}
