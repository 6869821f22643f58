package domain

import "testing"

func markChapters(t TrackerProgress, book string, n int) TrackerProgress {
	for c := 1; c <= n; c++ {
		t = t.ToggleChapter(book, c)
	}
	return t
}

func TestTrackerProgress_BookProgress(t *testing.T) {
	tests := []struct {
		name string
		read int
		want int
	}{
		{"none read", 0, 0},
		{"half read", 25, 50},
		{"all read", 50, 100},
		{"one read rounds", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := markChapters(TrackerProgress{}, "gen", tt.read)
			if got := p.BookProgress("gen"); got != tt.want {
				t.Errorf("BookProgress(gen) with %d read = %d, want %d", tt.read, got, tt.want)
			}
		})
	}
}

func TestTrackerProgress_ToggleChapterTwiceRestores(t *testing.T) {
	p := TrackerProgress{}.ToggleChapter("exo", 3)
	if !p.IsChapterRead("exo", 3) {
		t.Fatal("exo 3 not read after toggle")
	}
	p = p.ToggleChapter("exo", 3)
	if p.IsChapterRead("exo", 3) {
		t.Error("exo 3 still read after second toggle")
	}
	if _, ok := p["exo"]; ok {
		t.Error("empty chapter set should be removed")
	}
}

func TestTrackerProgress_ToggleDoesNotMutateReceiver(t *testing.T) {
	orig := TrackerProgress{"gen": {1}}
	_ = orig.ToggleChapter("gen", 2)
	if len(orig["gen"]) != 1 {
		t.Errorf("receiver mutated: %v", orig)
	}
}

func TestTrackerProgress_BookCompleteIsDerived(t *testing.T) {
	p := markChapters(TrackerProgress{}, "rut", 4)
	if !p.IsBookComplete("rut") {
		t.Fatal("ruth should be complete")
	}
	p = p.ToggleChapter("rut", 2)
	if p.IsBookComplete("rut") {
		t.Error("ruth should no longer be complete")
	}
}

func TestTrackerProgress_TotalsAndSections(t *testing.T) {
	p := markChapters(TrackerProgress{}, "mat", 28)

	// 28 / 1189 chapters
	if got := p.TotalProgress(); got != 2 {
		t.Errorf("TotalProgress() = %d, want 2", got)
	}
	// 28 / 260 NT chapters = 10.769...
	if got := p.SectionProgress(NewTestament); got != 10.8 {
		t.Errorf("SectionProgress(NT) = %v, want 10.8", got)
	}
	if got := p.SectionProgress(OldTestament); got != 0 {
		t.Errorf("SectionProgress(OT) = %v, want 0", got)
	}
}

func TestTrackerProgress_IgnoresOutOfRangeChapters(t *testing.T) {
	p := TrackerProgress{"oba": {1, 2, 7}}
	if got := p.BookProgress("oba"); got != 100 {
		t.Errorf("BookProgress(oba) = %d, want 100", got)
	}
	if got := p.BookProgress("zzz"); got != 0 {
		t.Errorf("unknown book progress = %d", got)
	}
}

func TestTrackerProgress_Canonical(t *testing.T) {
	p := TrackerProgress{"gen": {3, 1, 3}, "exo": {}}.Canonical()
	if len(p["gen"]) != 2 || p["gen"][0] != 1 {
		t.Errorf("Canonical() gen = %v", p["gen"])
	}
	if _, ok := p["exo"]; ok {
		t.Error("empty set kept")
	}
}

func TestBooks_Index(t *testing.T) {
	if got := len(Books()); got != 66 {
		t.Errorf("len(Books()) = %d, want 66", got)
	}
	if got := TotalChapters(Books()); got != 1189 {
		t.Errorf("TotalChapters = %d, want 1189", got)
	}
	if got := TotalChapters(BooksIn(NewTestament)); got != 260 {
		t.Errorf("NT chapters = %d, want 260", got)
	}
	if b, ok := LookupBook("GEN"); !ok || b.Chapters != 50 {
		t.Errorf("LookupBook(GEN) = %+v, %v", b, ok)
	}
	if next, ok := NextBook("mal"); !ok || next.Code != "mat" {
		t.Errorf("NextBook(mal) = %+v", next)
	}
	if _, ok := PrevBook("gen"); ok {
		t.Error("PrevBook(gen) should not exist")
	}
}
