package progress

import (
	"slices"
	"strings"
	"testing"

	"scriptorium/internal/adapters/memory"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

func day5() *domain.PlanDay {
	return &domain.PlanDay{
		Day:   5,
		Bible: []domain.BibleReading{{Book: "gen", Chapter: 5}},
		Egw:   []domain.EgwReading{{Label: "Cap. 2", Title: "The Creation"}},
	}
}

func newPlanController(store *memory.Store) *PlanController {
	return NewPlanController(state.NewPlanProgressStore(store, nil))
}

func TestPlanController_ToggleDayMarksEveryReading(t *testing.T) {
	store := memory.NewStore()
	c := newPlanController(store)

	out, err := c.ToggleDay("thematic", day5())
	if err != nil {
		t.Fatalf("ToggleDay() error = %v", err)
	}
	if !out.Changed || !out.Persist.OK() {
		t.Fatalf("ToggleDay() outcome = %+v", out)
	}
	if got := out.Progress.CompletedReadings(5); !slices.Equal(got, []string{"gen-5", "egw-Cap. 2"}) {
		t.Errorf("readings = %v, want [gen-5 egw-Cap. 2]", got)
	}
	if out.Message != "Day 5 complete" {
		t.Errorf("Message = %q", out.Message)
	}

	reloaded := newPlanController(store).Progress("thematic")
	if !reloaded.IsDayComplete(5) {
		t.Error("day 5 not complete after reload")
	}
}

func TestPlanController_ToggleReadingMessages(t *testing.T) {
	c := newPlanController(memory.NewStore())
	d := day5()

	out, _ := c.ToggleReading("thematic", d, "gen-5")
	if out.Message != "Genesis 5 marked as read" {
		t.Errorf("first message = %q", out.Message)
	}
	out, _ = c.ToggleReading("thematic", d, "egw-Cap. 2")
	if !strings.HasSuffix(out.Message, "day 5 complete") {
		t.Errorf("completing message = %q", out.Message)
	}
	out, _ = c.ToggleReading("thematic", d, "gen-5")
	if out.Message != "Genesis 5 marked as unread" || out.Progress.IsDayComplete(5) {
		t.Errorf("untoggle outcome = %+v", out)
	}
}

func TestPlanController_NoopWhenNotLoaded(t *testing.T) {
	tests := []struct {
		name string
		day  *domain.PlanDay
		key  string
	}{
		{name: "nil day", day: nil, key: "gen-5"},
		{name: "day without readings", day: &domain.PlanDay{Day: 5}, key: "gen-5"},
		{name: "unknown key", day: day5(), key: "exo-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			c := newPlanController(store)

			out, err := c.ToggleReading("thematic", tt.day, tt.key)
			if err != nil {
				t.Fatalf("ToggleReading() error = %v", err)
			}
			if out.Changed || out.Message != "" {
				t.Errorf("outcome = %+v, want unchanged", out)
			}
			if store.Writes() != 0 {
				t.Errorf("store written %d times, want 0", store.Writes())
			}
		})
	}
}

func TestPlanController_RejectsMissingPlanID(t *testing.T) {
	c := newPlanController(memory.NewStore())
	if _, err := c.ToggleDay("", day5()); err == nil {
		t.Error("ToggleDay() with empty plan ID succeeded")
	}
}
