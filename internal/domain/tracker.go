package domain

import (
	"math"
	"slices"
)

// TrackerProgress maps a book code to its set of read chapters.
// Book completion and every percentage are derived on read; nothing
// aggregate is stored.
type TrackerProgress map[string][]int

// Clone returns a deep copy
func (t TrackerProgress) Clone() TrackerProgress {
	out := make(TrackerProgress, len(t))
	for book, chapters := range t {
		out[book] = slices.Clone(chapters)
	}
	return out
}

// Canonical sorts and deduplicates every chapter set and drops empty ones
func (t TrackerProgress) Canonical() TrackerProgress {
	out := make(TrackerProgress, len(t))
	for book, chapters := range t {
		cs := slices.Clone(chapters)
		slices.Sort(cs)
		cs = slices.Compact(cs)
		if len(cs) > 0 {
			out[book] = cs
		}
	}
	return out
}

// IsChapterRead reports whether a chapter is marked read
func (t TrackerProgress) IsChapterRead(book string, chapter int) bool {
	_, found := slices.BinarySearch(t[book], chapter)
	return found
}

// ToggleChapter flips membership of a chapter in the book's set
func (t TrackerProgress) ToggleChapter(book string, chapter int) TrackerProgress {
	next := t.Clone()
	cs := next[book]
	i, found := slices.BinarySearch(cs, chapter)
	if found {
		cs = slices.Delete(cs, i, i+1)
	} else {
		cs = slices.Insert(cs, i, chapter)
	}
	if len(cs) == 0 {
		delete(next, book)
	} else {
		next[book] = cs
	}
	return next
}

// ReadCount counts read chapters of a book that exist in the index
func (t TrackerProgress) ReadCount(book Book) int {
	n := 0
	for _, c := range t[book.Code] {
		if c >= 1 && c <= book.Chapters {
			n++
		}
	}
	return n
}

// BookProgress returns round(100 * read / chapters) for one book
func (t TrackerProgress) BookProgress(code string) int {
	book, ok := LookupBook(code)
	if !ok || book.Chapters == 0 {
		return 0
	}
	return int(math.Round(100 * float64(t.ReadCount(book)) / float64(book.Chapters)))
}

// IsBookComplete is derived from BookProgress reaching 100
func (t TrackerProgress) IsBookComplete(code string) bool {
	return t.BookProgress(code) == 100
}

// TotalProgress returns the whole-Bible percentage as an integer
func (t TrackerProgress) TotalProgress() int {
	read, total := t.counts(Books())
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(read) / float64(total)))
}

// SectionProgress returns a testament's percentage with one decimal
func (t TrackerProgress) SectionProgress(testament Testament) float64 {
	read, total := t.counts(BooksIn(testament))
	if total == 0 {
		return 0
	}
	return math.Round(1000*float64(read)/float64(total)) / 10
}

// ReadChapters returns the total read chapter count across the index
func (t TrackerProgress) ReadChapters() int {
	read, _ := t.counts(Books())
	return read
}

func (t TrackerProgress) counts(bs []Book) (read, total int) {
	for _, b := range bs {
		read += t.ReadCount(b)
		total += b.Chapters
	}
	return read, total
}
