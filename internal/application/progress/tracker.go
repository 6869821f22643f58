package progress

import (
	"fmt"

	"scriptorium/internal/application"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

// ResetPrompt is the question asked before clearing the tracker
const ResetPrompt = "Reset all Bible tracker progress? This cannot be undone."

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f(prompt)
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// TrackerController marks chapters read and reports derived progress
type TrackerController struct {
	store *state.TrackerStore
}

// NewTrackerController creates a controller over store
func NewTrackerController(store *state.TrackerStore) *TrackerController {
	return &TrackerController{store: store}
}

// Progress returns a copy of the stored progress
func (c *TrackerController) Progress() domain.TrackerProgress {
	return c.store.Get()
}

// ToggleChapter flips one chapter. It reports the new read state.
func (c *TrackerController) ToggleChapter(code string, chapter int) (bool, state.PersistResult, error) {
	book, err := application.ValidateBook(code)
	if err != nil {
		return false, state.PersistResult{}, err
	}
	if err := application.ValidateChapter(book, chapter); err != nil {
		return false, state.PersistResult{}, err
	}

	var read bool
	res := c.store.Update(func(cur domain.TrackerProgress) domain.TrackerProgress {
		next := cur.ToggleChapter(book.Code, chapter)
		read = next.IsChapterRead(book.Code, chapter)
		return next
	})
	return read, res, nil
}

// BookProgress returns the integer percent read of one book
func (c *TrackerController) BookProgress(code string) int {
	return c.store.Get().BookProgress(code)
}

// TotalProgress returns the integer percent read across the whole Bible
func (c *TrackerController) TotalProgress() int {
	return c.store.Get().TotalProgress()
}

// SectionProgress returns the one-decimal percent read of a testament
func (c *TrackerController) SectionProgress(t domain.Testament) float64 {
	return c.store.Get().SectionProgress(t)
}

// Reset clears every chapter after an explicit confirmation. A nil
// confirmer or a negative answer leaves the progress untouched.
func (c *TrackerController) Reset(confirm Confirmer) (state.PersistResult, error) {
	if confirm == nil {
		return state.PersistResult{}, application.ErrConfirmationRequired
	}
	ok, err := confirm.Confirm(ResetPrompt)
	if err != nil {
		return state.PersistResult{}, fmt.Errorf("confirm reset: %w", err)
	}
	if !ok {
		return state.PersistResult{}, application.ErrConfirmationRequired
	}
	return c.store.Reset(), nil
}
