package commands

import (
	"context"
	"fmt"

	"scriptorium/internal/application"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

// ToggleChapterResult contains the result of toggling a tracker chapter
type ToggleChapterResult struct {
	Book         string
	Chapter      int
	Read         bool
	BookProgress int
	Message      string
	Persist      state.PersistResult
}

// ToggleChapterCommand marks a chapter read, or unread
type ToggleChapterCommand struct {
	ctrl    *progress.TrackerController
	Book    string
	Chapter int
}

// NewToggleChapterCommand creates a new ToggleChapterCommand
func NewToggleChapterCommand(ctrl *progress.TrackerController, book string, chapter int) *ToggleChapterCommand {
	return &ToggleChapterCommand{
		ctrl:    ctrl,
		Book:    book,
		Chapter: chapter,
	}
}

// Validate checks the book and chapter exist
func (c *ToggleChapterCommand) Validate() error {
	book, err := application.ValidateBook(c.Book)
	if err != nil {
		return err
	}
	return application.ValidateChapter(book, c.Chapter)
}

// Execute runs the toggle
func (c *ToggleChapterCommand) Execute(ctx context.Context) (*ToggleChapterResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	book, _ := domain.LookupBook(c.Book)
	read, res, err := c.ctrl.ToggleChapter(book.Code, c.Chapter)
	if err != nil {
		return nil, err
	}

	pct := c.ctrl.BookProgress(book.Code)
	status := "unread"
	if read {
		status = "read"
	}
	return &ToggleChapterResult{
		Book:         book.Code,
		Chapter:      c.Chapter,
		Read:         read,
		BookProgress: pct,
		Message:      fmt.Sprintf("%s %d marked %s (%s %d%%)", book.Name, c.Chapter, status, book.Name, pct),
		Persist:      res,
	}, nil
}

// ResetTrackerCommand clears all tracker progress after confirmation
type ResetTrackerCommand struct {
	ctrl    *progress.TrackerController
	confirm progress.Confirmer
}

// NewResetTrackerCommand creates a new ResetTrackerCommand
func NewResetTrackerCommand(ctrl *progress.TrackerController, confirm progress.Confirmer) *ResetTrackerCommand {
	return &ResetTrackerCommand{
		ctrl:    ctrl,
		confirm: confirm,
	}
}

// Execute asks for confirmation and resets. A declined confirmation
// returns application.ErrConfirmationRequired.
func (c *ResetTrackerCommand) Execute(ctx context.Context) (*Result, error) {
	cleared := c.ctrl.Progress().ReadChapters()
	res, err := c.ctrl.Reset(c.confirm)
	if err != nil {
		return nil, err
	}
	return &Result{
		Message: fmt.Sprintf("Cleared %d chapters from the tracker", cleared),
		Persist: res,
	}, nil
}
