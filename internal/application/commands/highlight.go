package commands

import (
	"context"
	"fmt"

	"scriptorium/internal/application"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

// ToggleHighlightResult contains the result of toggling a highlight
type ToggleHighlightResult struct {
	VerseID     string
	Highlighted bool
	Message     string
	Persist     state.PersistResult
}

// ToggleHighlightCommand highlights a verse, or removes its highlight
type ToggleHighlightCommand struct {
	store   *state.HighlightStore
	VerseID string
}

// NewToggleHighlightCommand creates a new ToggleHighlightCommand
func NewToggleHighlightCommand(store *state.HighlightStore, verseID string) *ToggleHighlightCommand {
	return &ToggleHighlightCommand{
		store:   store,
		VerseID: verseID,
	}
}

// Validate checks the verse ID names an existing chapter
func (c *ToggleHighlightCommand) Validate() error {
	return application.ValidateVerseID(c.VerseID)
}

// Execute runs the toggle
func (c *ToggleHighlightCommand) Execute(ctx context.Context) (*ToggleHighlightResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	code, chapter, verse, _ := domain.ParseVerseID(c.VerseID)
	book, _ := domain.LookupBook(code)
	id := domain.VerseID(book.Code, chapter, verse)
	ref := domain.Resolved{Book: book.Code, Chapter: chapter, Verse: verse}.String()

	on, res := c.store.Toggle(id)
	msg := fmt.Sprintf("Highlighted %s", ref)
	if !on {
		msg = fmt.Sprintf("Removed highlight from %s", ref)
	}
	return &ToggleHighlightResult{
		VerseID:     id,
		Highlighted: on,
		Message:     msg,
		Persist:     res,
	}, nil
}
