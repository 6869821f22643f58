// Package progress implements the reading-plan and Bible-tracker
// controllers on top of their persistent stores.
package progress

import (
	"fmt"
	"slices"
	"time"

	"scriptorium/internal/application"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

// ToastDuration is how long a toggle confirmation stays visible. A new
// toggle restarts the timer.
const ToastDuration = 1500 * time.Millisecond

// Outcome is the result of a plan toggle
type Outcome struct {
	// Changed is false when the day was not loaded or the key is unknown.
	// Nothing is written and Message is empty in that case.
	Changed  bool
	Progress domain.PlanProgress
	Message  string
	Persist  state.PersistResult
}

// PlanController toggles plan readings and days
type PlanController struct {
	store *state.PlanProgressStore
}

// NewPlanController creates a controller over store
func NewPlanController(store *state.PlanProgressStore) *PlanController {
	return &PlanController{store: store}
}

// Progress returns the stored progress of a plan
func (c *PlanController) Progress(planID string) domain.PlanProgress {
	return c.store.Get(planID)
}

// ToggleReading flips one reading of a loaded day
func (c *PlanController) ToggleReading(planID string, day *domain.PlanDay, key string) (Outcome, error) {
	if err := c.validate(planID, day); err != nil {
		return Outcome{}, err
	}
	if err := application.ValidateRequired("readingKey", key); err != nil {
		return Outcome{}, err
	}
	if !day.Loaded() || !slices.Contains(day.Keys(), key) {
		return Outcome{Progress: c.store.Get(planID)}, nil
	}

	var out Outcome
	out.Persist = c.store.Update(planID, func(cur domain.PlanProgress) domain.PlanProgress {
		next, changed := cur.ToggleReading(day, key)
		out.Changed = changed
		out.Progress = next
		return next
	})

	label := readingLabel(day, key)
	if out.Progress.IsReadingComplete(day.Day, key) {
		out.Message = fmt.Sprintf("%s marked as read", label)
	} else {
		out.Message = fmt.Sprintf("%s marked as unread", label)
	}
	if out.Progress.IsDayComplete(day.Day) {
		out.Message += fmt.Sprintf(" · day %d complete", day.Day)
	}
	return out, nil
}

// ToggleDay completes every reading of a loaded day, or clears them all
// when the day was already complete.
func (c *PlanController) ToggleDay(planID string, day *domain.PlanDay) (Outcome, error) {
	if err := c.validate(planID, day); err != nil {
		return Outcome{}, err
	}
	if !day.Loaded() {
		return Outcome{Progress: c.store.Get(planID)}, nil
	}

	var out Outcome
	out.Persist = c.store.Update(planID, func(cur domain.PlanProgress) domain.PlanProgress {
		next, changed := cur.ToggleDay(day)
		out.Changed = changed
		out.Progress = next
		return next
	})
	if out.Progress.IsDayComplete(day.Day) {
		out.Message = fmt.Sprintf("Day %d complete", day.Day)
	} else {
		out.Message = fmt.Sprintf("Day %d marked incomplete", day.Day)
	}
	return out, nil
}

func (c *PlanController) validate(planID string, day *domain.PlanDay) error {
	n := 1
	if day != nil {
		n = day.Day
	}
	return application.ValidatePlanDay(planID, n)
}

func readingLabel(day *domain.PlanDay, key string) string {
	for _, r := range day.Bible {
		if r.Key() == key {
			return r.Label()
		}
	}
	for _, r := range day.Egw {
		if r.Key() == key {
			if r.Title != "" {
				return fmt.Sprintf("%s (%s)", r.Label, r.Title)
			}
			return r.Label
		}
	}
	return key
}
