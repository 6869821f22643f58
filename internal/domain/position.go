package domain

import (
	"fmt"
	"strconv"
)

// Mode is the reading mode a navigation position belongs to
type Mode int

const (
	ModeBible Mode = iota
	ModeCommentary
	ModeInterlinear
)

// Modes lists every reading mode
var Modes = []Mode{ModeBible, ModeCommentary, ModeInterlinear}

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeBible:
		return "bible"
	case ModeCommentary:
		return "commentary"
	case ModeInterlinear:
		return "interlinear"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name back into a Mode
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeBible, fmt.Errorf("unknown mode: %q", s)
}

// Position is the last viewed book/chapter for one mode.
// The chapter is string-encoded to stay compatible with stored values.
type Position struct {
	LastBook    string `json:"lastBook"`
	LastChapter string `json:"lastChapter"`
}

// IsZero reports whether nothing was stored yet
func (p Position) IsZero() bool {
	return p.LastBook == "" && p.LastChapter == ""
}

// Chapter returns the chapter as an integer, 0 when not a positive number
func (p Position) Chapter() int {
	n, err := strconv.Atoi(p.LastChapter)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// Resolved is the (book, chapter, verse) triple a view settles on
type Resolved struct {
	Book    string
	Chapter int
	Verse   int
}

// Position converts the triple into its persisted form
func (r Resolved) Position() Position {
	return Position{LastBook: r.Book, LastChapter: strconv.Itoa(r.Chapter)}
}

// String renders a human reference such as "Genesis 1:1"
func (r Resolved) String() string {
	name := r.Book
	if b, ok := LookupBook(r.Book); ok {
		name = b.Name
	}
	return fmt.Sprintf("%s %d:%d", name, r.Chapter, r.Verse)
}
