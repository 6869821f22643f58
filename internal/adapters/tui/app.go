package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scriptorium/internal/adapters/tui/styles"
	"scriptorium/internal/adapters/tui/views"
	"scriptorium/internal/app"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
	"scriptorium/internal/events"
)

// ViewState represents the current view
type ViewState int

const (
	ViewReader ViewState = iota
	ViewPlans
	ViewTracker
	ViewStrong
	ViewSettings
	ViewHelp
)

// capturer is implemented by views that sometimes need every key press,
// such as an open text input or confirmation prompt
type capturer interface {
	Capturing() bool
}

// App is the main TUI application model
type App struct {
	rt *app.Runtime

	state    ViewState
	reader   *views.ReaderModel
	plans    *views.PlansModel
	tracker  *views.TrackerModel
	strong   *views.StrongModel
	settings *views.SettingsModel
	help     *views.HelpModel

	// set by the preference applier, turned into a PreferencesChangedMsg
	// once the current update returns
	prefsChanged bool
	prefs        domain.Preferences

	width  int
	height int
}

// NewApp creates a new TUI application over an open runtime
func NewApp(rt *app.Runtime) *App {
	a := &App{
		rt:       rt,
		state:    ViewReader,
		reader:   views.NewReaderModel(rt),
		plans:    views.NewPlansModel(rt),
		tracker:  views.NewTrackerModel(rt),
		strong:   views.NewStrongModel(rt),
		settings: views.NewSettingsModel(rt),
		help:     views.NewHelpModel(),
	}
	rt.Stores.Preferences.AddApplier(state.ApplierFunc(func(p domain.Preferences) {
		styles.Apply(p)
		a.prefs = p
		a.prefsChanged = true
	}))
	return a
}

// Close releases the views' subscriptions
func (a *App) Close() {
	a.reader.Close()
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.reader.Init(), a.plans.Init())
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if a.prefsChanged {
		a.prefsChanged = false
		p := a.prefs
		cmd = tea.Batch(cmd, func() tea.Msg { return views.PreferencesChangedMsg{Preferences: p} })
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.broadcast(msg)

	case tea.KeyMsg:
		if cmd, ok := a.globalKey(msg); ok {
			return cmd
		}
		return a.delegate(msg)

	// View switching messages
	case views.SwitchToReaderMsg:
		a.state = ViewReader
		return nil

	case views.SwitchToPlansMsg:
		a.state = ViewPlans
		return nil

	case views.SwitchToTrackerMsg:
		a.state = ViewTracker
		return nil

	case views.SwitchToStrongMsg:
		a.state = ViewStrong
		if msg.Number != "" {
			return a.strong.Lookup(msg.Number)
		}
		return a.strong.Init()

	case views.SwitchToSettingsMsg:
		a.state = ViewSettings
		return nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return nil

	case views.OpenReadingMsg:
		// the bible navigator follows navigate events, so publishing moves
		// its location before the reader loads
		a.rt.Bus.Navigate(events.NavigateDetail{
			Book:    msg.Reading.Book,
			Chapter: msg.Reading.Chapter,
			Verses:  msg.Reading.Verses,
		})
		a.state = ViewReader
		if a.reader.Mode() != domain.ModeBible {
			return a.reader.SetMode(domain.ModeBible)
		}
		return a.reader.Load()

	case views.PreferencesChangedMsg:
		return a.broadcast(msg)
	}

	// Loads, spinner ticks and toast timers go to every view; each view
	// ignores what it did not start.
	return a.broadcast(msg)
}

func (a *App) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}
	if c, ok := a.current().(capturer); ok && c.Capturing() {
		return nil, false
	}

	switch {
	case key.Matches(msg, views.AppKeys.Quit):
		return tea.Quit, true
	case key.Matches(msg, views.AppKeys.Reader):
		a.state = ViewReader
	case key.Matches(msg, views.AppKeys.Plans):
		a.state = ViewPlans
	case key.Matches(msg, views.AppKeys.Tracker):
		a.state = ViewTracker
	case key.Matches(msg, views.AppKeys.Strong):
		a.state = ViewStrong
		return a.strong.Init(), true
	case key.Matches(msg, views.AppKeys.Settings):
		a.state = ViewSettings
	case key.Matches(msg, views.AppKeys.Help) && a.state != ViewHelp:
		a.state = ViewHelp
	default:
		return nil, false
	}
	return nil, true
}

func (a *App) current() tea.Model {
	switch a.state {
	case ViewPlans:
		return a.plans
	case ViewTracker:
		return a.tracker
	case ViewStrong:
		return a.strong
	case ViewSettings:
		return a.settings
	case ViewHelp:
		return a.help
	default:
		return a.reader
	}
}

// Delegate to current view
func (a *App) delegate(msg tea.Msg) tea.Cmd {
	_, cmd := a.current().Update(msg)
	return cmd
}

func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	models := []tea.Model{a.reader, a.plans, a.tracker, a.strong, a.settings, a.help}
	cmds := make([]tea.Cmd, 0, len(models))
	for _, m := range models {
		_, cmd := m.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View renders the current view
func (a *App) View() string {
	return a.current().View()
}
