package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scriptorium/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// loadGuard numbers the loads of a view. A response is applied only when
// it carries the number of the latest load; older responses are dropped.
// Superseded requests still run to completion.
type loadGuard struct {
	gen uint64
}

// Next starts a new load and returns its number
func (g *loadGuard) Next() uint64 {
	g.gen++
	return g.gen
}

// Current reports whether gen is the latest load
func (g *loadGuard) Current(gen uint64) bool {
	return gen == g.gen
}

// Toast is a transient confirmation that hides itself after a delay.
// Showing a new message restarts the delay.
type Toast struct {
	Text     string
	seq      uint64
	duration time.Duration
}

type toastExpiredMsg struct {
	seq uint64
}

// NewToast creates a toast hidden after d
func NewToast(d time.Duration) Toast {
	return Toast{duration: d}
}

// Show displays text and schedules its removal
func (t *Toast) Show(text string) tea.Cmd {
	t.seq++
	t.Text = text
	seq := t.seq
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Update hides the toast when its latest timer fires
func (t *Toast) Update(msg tea.Msg) {
	if m, ok := msg.(toastExpiredMsg); ok && m.seq == t.seq {
		t.Text = ""
	}
}

// Visible reports whether a message is shown
func (t *Toast) Visible() bool {
	return t.Text != ""
}

// Messages for view switching
type SwitchToReaderMsg struct{}

type SwitchToPlansMsg struct{}

type SwitchToTrackerMsg struct{}

type SwitchToStrongMsg struct {
	Number string
}

type SwitchToSettingsMsg struct{}

type SwitchToHelpMsg struct{}

// OpenReadingMsg asks the app to show a chapter in the reader
type OpenReadingMsg struct {
	Reading domain.BibleReading
}

// PreferencesChangedMsg is sent after the preference store changed
type PreferencesChangedMsg struct {
	Preferences domain.Preferences
}
