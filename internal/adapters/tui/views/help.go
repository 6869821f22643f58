package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scriptorium/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToReaderMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Scriptorium Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Views"))
	b.WriteString("\n")
	b.WriteString(bindingLines(AppKeys.Reader, AppKeys.Plans, AppKeys.Tracker, AppKeys.Strong, AppKeys.Settings))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Reading"))
	b.WriteString("\n")
	b.WriteString(bindingLines(
		ReaderKeys.Up, ReaderKeys.Down, ReaderKeys.PageDown, ReaderKeys.PageUp,
		ReaderKeys.NextChapter, ReaderKeys.PrevChapter, ReaderKeys.NextBook, ReaderKeys.PrevBook,
		ReaderKeys.Back, ReaderKeys.Mode,
	))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Verse actions"))
	b.WriteString("\n")
	b.WriteString(bindingLines(ReaderKeys.Highlight, ReaderKeys.Copy, ReaderKeys.Strong))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Display"))
	b.WriteString("\n")
	b.WriteString(bindingLines(ReaderKeys.Sidebar, ReaderKeys.Focus, ReaderKeys.Theme, ReaderKeys.Bigger))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Plans"))
	b.WriteString("\n")
	b.WriteString(bindingLines(PlansKeys.Search, PlansKeys.Type, PlansKeys.Favorite, PlansKeys.Open, PlansKeys.ToggleReading, PlansKeys.ToggleDay))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Tracker"))
	b.WriteString("\n")
	b.WriteString(bindingLines(TrackerKeys.Open, TrackerKeys.Toggle, TrackerKeys.Read, TrackerKeys.Reset))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(bindingLines(ReaderKeys.Retry, AppKeys.Help, AppKeys.Quit))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func bindingLines(bindings ...key.Binding) string {
	var b strings.Builder
	for _, k := range bindings {
		h := k.Help()
		b.WriteString(helpLine(h.Key, h.Desc))
	}
	return b.String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	w := lipgloss.Width(s)
	if w >= length {
		return s
	}
	return s + strings.Repeat(" ", length-w)
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
