package commands

import (
	"context"

	"scriptorium/internal/application/content"
	"scriptorium/internal/application/navigation"
	"scriptorium/internal/application/state"
	"scriptorium/internal/domain"
)

// ReadChapterResult is one resolved chapter in one reading mode
type ReadChapterResult struct {
	Position    domain.Resolved
	Mode        domain.Mode
	BookName    string
	Verses      []domain.Verse
	Commentary  *domain.CommentaryChapter
	Interlinear []domain.InterlinearVerse
	Highlighted []int
	Persist     state.PersistResult
}

// ReadChapterCommand resolves a position like a view does, remembers it
// and loads the chapter for the mode. Empty fields fall back to the
// remembered position of the mode.
type ReadChapterCommand struct {
	library *content.Library
	stores  *state.Stores
	Mode    domain.Mode
	Book    string
	Chapter int
	Verses  string
}

// NewReadChapterCommand creates a new ReadChapterCommand
func NewReadChapterCommand(library *content.Library, stores *state.Stores, mode domain.Mode, book string, chapter int, verses string) *ReadChapterCommand {
	return &ReadChapterCommand{
		library: library,
		stores:  stores,
		Mode:    mode,
		Book:    book,
		Chapter: chapter,
		Verses:  verses,
	}
}

// Execute runs the command
func (c *ReadChapterCommand) Execute(ctx context.Context) (*ReadChapterResult, error) {
	q := navigation.Query{Book: c.Book, Chapter: c.Chapter, Verses: c.Verses}
	store := c.stores.Navigation(c.Mode)
	pos := navigation.Resolve(q, store.Get())

	book, _ := domain.LookupBook(pos.Book)
	res := &ReadChapterResult{
		Position:    pos,
		Mode:        c.Mode,
		BookName:    book.Name,
		Highlighted: c.stores.Highlights.InChapter(pos.Book, pos.Chapter),
	}

	switch c.Mode {
	case domain.ModeCommentary:
		ch, err := c.library.CommentaryChapter(ctx, pos.Book, pos.Chapter)
		if err != nil {
			return nil, err
		}
		res.Commentary = ch
	case domain.ModeInterlinear:
		ch, err := c.library.InterlinearChapter(ctx, pos.Book, pos.Chapter)
		if err != nil {
			return nil, err
		}
		res.Interlinear = selectInterlinear(ch.Verses, q.VerseNumbers(len(ch.Verses)))
	default:
		ch, err := c.library.Chapter(ctx, pos.Book, pos.Chapter)
		if err != nil {
			return nil, err
		}
		res.Verses = ch.Select(q.VerseNumbers(len(ch.Verses)))
	}

	res.Persist = store.Set(pos.Position())
	return res, nil
}

func selectInterlinear(verses []domain.InterlinearVerse, numbers []int) []domain.InterlinearVerse {
	if len(numbers) == 0 {
		return verses
	}
	want := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		want[n] = true
	}
	var out []domain.InterlinearVerse
	for _, v := range verses {
		if want[v.Number] {
			out = append(out, v)
		}
	}
	return out
}
