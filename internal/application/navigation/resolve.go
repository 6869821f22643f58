package navigation

import "scriptorium/internal/domain"

// Resolve picks the triple a view displays. Location parameters win over
// the persisted position, which wins over the first chapter of the first
// book. Unknown book codes fall through to the next source and chapters
// are clamped to the book. A book taken from the location that differs
// from the persisted one starts at chapter 1 unless a chapter is given.
func Resolve(q Query, last domain.Position) domain.Resolved {
	lastBook, lastOK := domain.LookupBook(last.LastBook)

	var (
		book    domain.Book
		chapter int
	)
	if b, ok := domain.LookupBook(q.Book); ok {
		book = b
		if lastOK && lastBook.Code == b.Code {
			chapter = last.Chapter()
		}
	} else if lastOK {
		book = lastBook
		chapter = last.Chapter()
	} else {
		book = domain.FirstBook()
	}

	if q.Chapter > 0 {
		chapter = q.Chapter
	}

	verse := 1
	if q.Verse > 0 {
		verse = q.Verse
	}

	return domain.Resolved{
		Book:    book.Code,
		Chapter: book.ClampChapter(chapter),
		Verse:   verse,
	}
}
