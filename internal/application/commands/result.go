package commands

import "scriptorium/internal/application/state"

// Result is the outcome of a command that only reports a message
type Result struct {
	Message string
	Persist state.PersistResult
}
