package progress

import (
	"errors"
	"testing"

	"scriptorium/internal/adapters/memory"
	"scriptorium/internal/application"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

func newTracker() *TrackerController {
	return NewTrackerController(state.NewTrackerStore(memory.NewStore(), nil))
}

func TestTrackerController_ToggleChapter(t *testing.T) {
	c := newTracker()

	read, res, err := c.ToggleChapter("GEN", 1)
	if err != nil || !res.OK() {
		t.Fatalf("ToggleChapter() error = %v, persist = %v", err, res.Err)
	}
	if !read {
		t.Error("ToggleChapter() read = false, want true")
	}
	if got := c.BookProgress("gen"); got != 2 {
		t.Errorf("BookProgress(gen) = %d, want 2", got)
	}

	read, _, _ = c.ToggleChapter("gen", 1)
	if read || c.Progress().ReadChapters() != 0 {
		t.Error("second toggle did not clear the chapter")
	}
}

func TestTrackerController_ToggleChapterValidates(t *testing.T) {
	tests := []struct {
		name    string
		book    string
		chapter int
	}{
		{name: "unknown book", book: "xyz", chapter: 1},
		{name: "empty book", book: "", chapter: 1},
		{name: "chapter zero", book: "gen", chapter: 0},
		{name: "chapter past end", book: "gen", chapter: 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newTracker().ToggleChapter(tt.book, tt.chapter)
			var verr *application.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestTrackerController_ResetRequiresConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		confirmer Confirmer
		wantErr   error
		wantRead  int
	}{
		{name: "no confirmer", confirmer: nil, wantErr: application.ErrConfirmationRequired, wantRead: 3},
		{
			name:      "declined",
			confirmer: ConfirmFunc(func(string) (bool, error) { return false, nil }),
			wantErr:   application.ErrConfirmationRequired,
			wantRead:  3,
		},
		{
			name:      "confirmed",
			confirmer: ConfirmFunc(func(string) (bool, error) { return true, nil }),
			wantRead:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTracker()
			c.ToggleChapter("gen", 1)
			c.ToggleChapter("gen", 2)
			c.ToggleChapter("mat", 1)

			_, err := c.Reset(tt.confirmer)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Reset() error = %v, want %v", err, tt.wantErr)
			}
			if got := c.Progress().ReadChapters(); got != tt.wantRead {
				t.Errorf("ReadChapters() = %d, want %d", got, tt.wantRead)
			}
		})
	}
}

func TestTrackerController_SectionProgress(t *testing.T) {
	c := newTracker()
	for ch := 1; ch <= 28; ch++ {
		c.ToggleChapter("mat", ch)
	}
	if got := c.SectionProgress(domain.NewTestament); got != 10.8 {
		t.Errorf("SectionProgress(NT) = %v, want 10.8", got)
	}
	if got := c.TotalProgress(); got != 2 {
		t.Errorf("TotalProgress() = %d, want 2", got)
	}
}
