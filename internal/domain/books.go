package domain

import "strings"

// Testament splits the canon for section progress
type Testament string

const (
	OldTestament Testament = "OT"
	NewTestament Testament = "NT"
)

// Book is a single entry of the static book index
type Book struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Chapters  int       `json:"chapters"`
	Testament Testament `json:"testament"`
}

var books = []Book{
	{"gen", "Genesis", 50, OldTestament},
	{"exo", "Exodus", 40, OldTestament},
	{"lev", "Leviticus", 27, OldTestament},
	{"num", "Numbers", 36, OldTestament},
	{"deu", "Deuteronomy", 34, OldTestament},
	{"jos", "Joshua", 24, OldTestament},
	{"jdg", "Judges", 21, OldTestament},
	{"rut", "Ruth", 4, OldTestament},
	{"1sa", "1 Samuel", 31, OldTestament},
	{"2sa", "2 Samuel", 24, OldTestament},
	{"1ki", "1 Kings", 22, OldTestament},
	{"2ki", "2 Kings", 25, OldTestament},
	{"1ch", "1 Chronicles", 29, OldTestament},
	{"2ch", "2 Chronicles", 36, OldTestament},
	{"ezr", "Ezra", 10, OldTestament},
	{"neh", "Nehemiah", 13, OldTestament},
	{"est", "Esther", 10, OldTestament},
	{"job", "Job", 42, OldTestament},
	{"psa", "Psalms", 150, OldTestament},
	{"pro", "Proverbs", 31, OldTestament},
	{"ecc", "Ecclesiastes", 12, OldTestament},
	{"sng", "Song of Solomon", 8, OldTestament},
	{"isa", "Isaiah", 66, OldTestament},
	{"jer", "Jeremiah", 52, OldTestament},
	{"lam", "Lamentations", 5, OldTestament},
	{"ezk", "Ezekiel", 48, OldTestament},
	{"dan", "Daniel", 12, OldTestament},
	{"hos", "Hosea", 14, OldTestament},
	{"jol", "Joel", 3, OldTestament},
	{"amo", "Amos", 9, OldTestament},
	{"oba", "Obadiah", 1, OldTestament},
	{"jon", "Jonah", 4, OldTestament},
	{"mic", "Micah", 7, OldTestament},
	{"nam", "Nahum", 3, OldTestament},
	{"hab", "Habakkuk", 3, OldTestament},
	{"zep", "Zephaniah", 3, OldTestament},
	{"hag", "Haggai", 2, OldTestament},
	{"zec", "Zechariah", 14, OldTestament},
	{"mal", "Malachi", 4, OldTestament},
	{"mat", "Matthew", 28, NewTestament},
	{"mrk", "Mark", 16, NewTestament},
	{"luk", "Luke", 24, NewTestament},
	{"jhn", "John", 21, NewTestament},
	{"act", "Acts", 28, NewTestament},
	{"rom", "Romans", 16, NewTestament},
	{"1co", "1 Corinthians", 16, NewTestament},
	{"2co", "2 Corinthians", 13, NewTestament},
	{"gal", "Galatians", 6, NewTestament},
	{"eph", "Ephesians", 6, NewTestament},
	{"php", "Philippians", 4, NewTestament},
	{"col", "Colossians", 4, NewTestament},
	{"1th", "1 Thessalonians", 5, NewTestament},
	{"2th", "2 Thessalonians", 3, NewTestament},
	{"1ti", "1 Timothy", 6, NewTestament},
	{"2ti", "2 Timothy", 4, NewTestament},
	{"tit", "Titus", 3, NewTestament},
	{"phm", "Philemon", 1, NewTestament},
	{"heb", "Hebrews", 13, NewTestament},
	{"jas", "James", 5, NewTestament},
	{"1pe", "1 Peter", 5, NewTestament},
	{"2pe", "2 Peter", 3, NewTestament},
	{"1jn", "1 John", 5, NewTestament},
	{"2jn", "2 John", 1, NewTestament},
	{"3jn", "3 John", 1, NewTestament},
	{"jud", "Jude", 1, NewTestament},
	{"rev", "Revelation", 22, NewTestament},
}

var bookIndex = func() map[string]int {
	idx := make(map[string]int, len(books))
	for i, b := range books {
		idx[b.Code] = i
	}
	return idx
}()

// Books returns the canonical book index in order. The slice is a copy.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// BooksIn returns the books of one testament in canonical order
func BooksIn(t Testament) []Book {
	var out []Book
	for _, b := range books {
		if b.Testament == t {
			out = append(out, b)
		}
	}
	return out
}

// FirstBook is the default book when nothing else resolves
func FirstBook() Book {
	return books[0]
}

// LookupBook finds a book by code (case-insensitive)
func LookupBook(code string) (Book, bool) {
	i, ok := bookIndex[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Book{}, false
	}
	return books[i], true
}

// BookOrder returns the canonical position of a book, or -1
func BookOrder(code string) int {
	i, ok := bookIndex[strings.ToLower(code)]
	if !ok {
		return -1
	}
	return i
}

// NextBook returns the book after code, if any
func NextBook(code string) (Book, bool) {
	i := BookOrder(code)
	if i < 0 || i+1 >= len(books) {
		return Book{}, false
	}
	return books[i+1], true
}

// PrevBook returns the book before code, if any
func PrevBook(code string) (Book, bool) {
	i := BookOrder(code)
	if i <= 0 {
		return Book{}, false
	}
	return books[i-1], true
}

// TotalChapters counts chapters across the given books
func TotalChapters(bs []Book) int {
	total := 0
	for _, b := range bs {
		total += b.Chapters
	}
	return total
}

// ClampChapter keeps a chapter number inside the book's range
func (b Book) ClampChapter(chapter int) int {
	if chapter < 1 {
		return 1
	}
	if chapter > b.Chapters {
		return b.Chapters
	}
	return chapter
}
