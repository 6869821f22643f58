package commands

import (
	"context"
	"fmt"

	"scriptorium/internal/application"
	"scriptorium/internal/application/content"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/application/state"
)

// TogglePlanDayCommand completes or clears a whole plan day
type TogglePlanDayCommand struct {
	ctrl    *progress.PlanController
	library *content.Library
	PlanID  string
	Day     int
}

// NewTogglePlanDayCommand creates a new TogglePlanDayCommand
func NewTogglePlanDayCommand(ctrl *progress.PlanController, library *content.Library, planID string, day int) *TogglePlanDayCommand {
	return &TogglePlanDayCommand{
		ctrl:    ctrl,
		library: library,
		PlanID:  planID,
		Day:     day,
	}
}

// Validate checks the plan ID and day
func (c *TogglePlanDayCommand) Validate() error {
	return application.ValidatePlanDay(c.PlanID, c.Day)
}

// Execute loads the day's readings and toggles the day
func (c *TogglePlanDayCommand) Execute(ctx context.Context) (*progress.Outcome, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	day, err := c.library.PlanDay(ctx, c.PlanID, c.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan day: %w", err)
	}

	out, err := c.ctrl.ToggleDay(c.PlanID, day)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TogglePlanReadingCommand flips one reading of a plan day
type TogglePlanReadingCommand struct {
	ctrl    *progress.PlanController
	library *content.Library
	PlanID  string
	Day     int
	Key     string
}

// NewTogglePlanReadingCommand creates a new TogglePlanReadingCommand
func NewTogglePlanReadingCommand(ctrl *progress.PlanController, library *content.Library, planID string, day int, key string) *TogglePlanReadingCommand {
	return &TogglePlanReadingCommand{
		ctrl:    ctrl,
		library: library,
		PlanID:  planID,
		Day:     day,
		Key:     key,
	}
}

// Validate checks the plan ID, day and reading key
func (c *TogglePlanReadingCommand) Validate() error {
	if err := application.ValidatePlanDay(c.PlanID, c.Day); err != nil {
		return err
	}
	return application.ValidateRequired("readingKey", c.Key)
}

// Execute loads the day's readings and toggles one of them. An unknown
// key leaves the progress unchanged and is reported as a validation error.
func (c *TogglePlanReadingCommand) Execute(ctx context.Context) (*progress.Outcome, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	day, err := c.library.PlanDay(ctx, c.PlanID, c.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan day: %w", err)
	}

	out, err := c.ctrl.ToggleReading(c.PlanID, day, c.Key)
	if err != nil {
		return nil, err
	}
	if !out.Changed {
		return nil, &application.ValidationError{
			Field:   "readingKey",
			Message: fmt.Sprintf("day %d has no reading %q (readings: %v)", c.Day, c.Key, day.Keys()),
		}
	}
	return &out, nil
}

// TogglePlanFlagResult contains the result of toggling a plan flag
type TogglePlanFlagResult struct {
	PlanID  string
	On      bool
	Message string
	Persist state.PersistResult
}

// TogglePlanFlagCommand adds a plan to, or removes it from, the favorite
// or saved list
type TogglePlanFlagCommand struct {
	set     *state.IDSet
	library *content.Library
	Flag    string
	PlanID  string
}

// NewTogglePlanFlagCommand creates a new TogglePlanFlagCommand. flag names
// the list in messages ("favorites", "saved plans").
func NewTogglePlanFlagCommand(set *state.IDSet, library *content.Library, flag, planID string) *TogglePlanFlagCommand {
	return &TogglePlanFlagCommand{
		set:     set,
		library: library,
		Flag:    flag,
		PlanID:  planID,
	}
}

// Validate checks the plan ID
func (c *TogglePlanFlagCommand) Validate() error {
	return application.ValidateRequired("planID", c.PlanID)
}

// Execute toggles the flag of a plan from the catalogue
func (c *TogglePlanFlagCommand) Execute(ctx context.Context) (*TogglePlanFlagResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	plan, err := c.library.Plan(ctx, c.PlanID)
	if err != nil {
		return nil, err
	}

	on, res := c.set.Toggle(plan.ID)
	msg := fmt.Sprintf("Added %s to %s", plan.Title, c.Flag)
	if !on {
		msg = fmt.Sprintf("Removed %s from %s", plan.Title, c.Flag)
	}
	return &TogglePlanFlagResult{
		PlanID:  plan.ID,
		On:      on,
		Message: msg,
		Persist: res,
	}, nil
}
