package views

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap holds the bindings available in every view
type AppKeyMap struct {
	Reader   key.Binding
	Plans    key.Binding
	Tracker  key.Binding
	Strong   key.Binding
	Settings key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var AppKeys = AppKeyMap{
	Reader: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "reader"),
	),
	Plans: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "plans"),
	),
	Tracker: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "tracker"),
	),
	Strong: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "strong's"),
	),
	Settings: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "settings"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
