package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scriptorium/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel is an inline yes/no prompt for destructive actions
// such as clearing the tracker or resetting preferences
type ConfirmationModel struct {
	Question string
	Keys     ConfirmKeyMap
	active   bool
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// Ask shows the prompt
func (m *ConfirmationModel) Ask(question string) {
	m.Question = question
	m.active = true
}

// Active reports whether the prompt is waiting for an answer
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// HandleKeyMsg resolves the prompt. Returns (answered, confirmed); keys
// other than confirm and cancel leave the prompt open.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg) (answered, confirmed bool) {
	if !m.active {
		return false, false
	}
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		m.active = false
		return true, false
	case key.Matches(msg, m.Keys.Confirm):
		m.active = false
		return true, true
	}
	return false, false
}

// View renders the prompt, or nothing when it is closed
func (m ConfirmationModel) View() string {
	if !m.active {
		return ""
	}
	return RenderConfirmPrompt(m.Question)
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(styles.ErrorMsg.Render(question))
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
