package navigation

import (
	"scriptorium/internal/application"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
	"scriptorium/internal/events"
)

// Navigator ties one view's location to its mode's position store
type Navigator struct {
	mode  domain.Mode
	loc   *Location
	store *state.NavigationStore
}

// NewNavigator creates a navigator for mode
func NewNavigator(mode domain.Mode, loc *Location, store *state.NavigationStore) *Navigator {
	return &Navigator{mode: mode, loc: loc, store: store}
}

// Mode returns the reading mode
func (n *Navigator) Mode() domain.Mode {
	return n.mode
}

// Location returns the underlying location
func (n *Navigator) Location() *Location {
	return n.loc
}

// Query returns the parsed current parameters
func (n *Navigator) Query() Query {
	return ParseQuery(n.loc.Current())
}

// Sync resolves the current triple and writes it back into the location,
// without adding a history entry, and into the position store.
func (n *Navigator) Sync() (domain.Resolved, state.PersistResult) {
	q := n.Query()
	r := Resolve(q, n.store.Get())

	q.Book, q.Chapter, q.Verse = r.Book, r.Chapter, r.Verse
	n.loc.Replace(q.Values())
	return r, n.store.Set(r.Position())
}

// ChangeBook moves to chapter 1 verse 1 of another book
func (n *Navigator) ChangeBook(code string) (domain.Resolved, state.PersistResult, error) {
	book, err := application.ValidateBook(code)
	if err != nil {
		return domain.Resolved{}, state.PersistResult{}, err
	}
	return n.push(Query{Book: book.Code, Chapter: 1, Verse: 1})
}

// ChangeChapter moves to verse 1 of another chapter of the current book.
// The chapter is clamped to the book.
func (n *Navigator) ChangeChapter(chapter int) (domain.Resolved, state.PersistResult, error) {
	cur, _ := n.Sync()
	book, _ := domain.LookupBook(cur.Book)
	return n.push(Query{Book: cur.Book, Chapter: book.ClampChapter(chapter), Verse: 1})
}

// ChangeVerse selects a verse without adding a history entry
func (n *Navigator) ChangeVerse(verse int) (domain.Resolved, state.PersistResult) {
	if verse < 1 {
		verse = 1
	}
	q := n.Query()
	q.Verse = verse
	n.loc.Replace(q.Values())
	return n.Sync()
}

// NextChapter advances one chapter, continuing into the next book
func (n *Navigator) NextChapter() (domain.Resolved, state.PersistResult, error) {
	cur, _ := n.Sync()
	book, _ := domain.LookupBook(cur.Book)
	if cur.Chapter < book.Chapters {
		return n.ChangeChapter(cur.Chapter + 1)
	}
	next, ok := domain.NextBook(cur.Book)
	if !ok {
		return cur, state.PersistResult{Key: n.store.Key()}, nil
	}
	return n.ChangeBook(next.Code)
}

// PrevChapter goes back one chapter, continuing into the last chapter of
// the previous book
func (n *Navigator) PrevChapter() (domain.Resolved, state.PersistResult, error) {
	cur, _ := n.Sync()
	if cur.Chapter > 1 {
		return n.ChangeChapter(cur.Chapter - 1)
	}
	prev, ok := domain.PrevBook(cur.Book)
	if !ok {
		return cur, state.PersistResult{Key: n.store.Key()}, nil
	}
	return n.push(Query{Book: prev.Code, Chapter: prev.Chapters, Verse: 1})
}

// Back returns to the previous history entry and resolves it
func (n *Navigator) Back() (domain.Resolved, bool) {
	if !n.loc.Back() {
		return domain.Resolved{}, false
	}
	r, _ := n.Sync()
	return r, true
}

// Listen follows navigate events published by other components
func (n *Navigator) Listen(bus *events.Bus) func() {
	return bus.Subscribe(events.TopicNavigate, func(ev events.Event) {
		d, ok := ev.Payload.(events.NavigateDetail)
		if !ok {
			return
		}
		if _, ok := domain.LookupBook(d.Book); !ok {
			return
		}
		chapter := d.Chapter
		if chapter < 1 {
			chapter = 1
		}
		n.push(Query{Book: d.Book, Chapter: chapter, Verse: 1, Verses: d.Verses})
	})
}

func (n *Navigator) push(q Query) (domain.Resolved, state.PersistResult, error) {
	n.loc.Push(q.Values())
	r, res := n.Sync()
	return r, res, nil
}
