package domain

import (
	"sort"
	"strings"
)

// BookIndexEntry is one row of books-index.json
type BookIndexEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Chapters int    `json:"chapters"`
}

// Verse is a single verse of Bible text
type Verse struct {
	Number    int      `json:"verse"`
	Text      string   `json:"text"`
	Footnotes []string `json:"footnotes,omitempty"`
}

// ChapterText holds the verses of one chapter
type ChapterText struct {
	Number int     `json:"chapter"`
	Verses []Verse `json:"verses"`
}

// BookText is the document served at /data/books/{code}.json
type BookText struct {
	Code     string        `json:"book"`
	Name     string        `json:"name"`
	Chapters []ChapterText `json:"chapters"`
}

// Chapter finds a chapter by number
func (b *BookText) Chapter(n int) (*ChapterText, bool) {
	if b == nil {
		return nil, false
	}
	for i := range b.Chapters {
		if b.Chapters[i].Number == n {
			return &b.Chapters[i], true
		}
	}
	return nil, false
}

// Select returns the verses listed in numbers, or all verses when empty
func (c *ChapterText) Select(numbers []int) []Verse {
	if len(numbers) == 0 {
		return c.Verses
	}
	want := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		want[n] = true
	}
	var out []Verse
	for _, v := range c.Verses {
		if want[v.Number] {
			out = append(out, v)
		}
	}
	return out
}

// CommentaryNote comments on one verse
type CommentaryNote struct {
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

// CommentaryChapter holds the commentary for one chapter
type CommentaryChapter struct {
	Number int              `json:"chapter"`
	Intro  string           `json:"intro,omitempty"`
	Notes  []CommentaryNote `json:"verses"`
}

// Commentary is the document served at /data/commentary/{code}.json
type Commentary struct {
	Code     string              `json:"book"`
	Chapters []CommentaryChapter `json:"chapters"`
}

// Chapter finds commentary for a chapter
func (c *Commentary) Chapter(n int) (*CommentaryChapter, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Chapters {
		if c.Chapters[i].Number == n {
			return &c.Chapters[i], true
		}
	}
	return nil, false
}

// Word is one original-language token of the interlinear text
type Word struct {
	Text     string `json:"text"`
	Translit string `json:"translit,omitempty"`
	Strong   string `json:"strong,omitempty"`
	Gloss    string `json:"gloss,omitempty"`
	Morph    string `json:"morph,omitempty"`
}

// InterlinearVerse holds the words of one verse
type InterlinearVerse struct {
	Number int    `json:"verse"`
	Words  []Word `json:"words"`
}

// InterlinearChapter holds the verses of one chapter
type InterlinearChapter struct {
	Number int                `json:"chapter"`
	Verses []InterlinearVerse `json:"verses"`
}

// InterlinearBook is the document served at /data/bible/hebrew/{book}.json
type InterlinearBook struct {
	Code     string               `json:"book"`
	Chapters []InterlinearChapter `json:"chapters"`
}

// Chapter finds an interlinear chapter
func (b *InterlinearBook) Chapter(n int) (*InterlinearChapter, bool) {
	if b == nil {
		return nil, false
	}
	for i := range b.Chapters {
		if b.Chapters[i].Number == n {
			return &b.Chapters[i], true
		}
	}
	return nil, false
}

// StrongEntry is one Strong's dictionary definition
type StrongEntry struct {
	Number        string `json:"-"`
	Lemma         string `json:"lemma"`
	Translit      string `json:"translit,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Definition    string `json:"definition"`
	KJV           string `json:"kjv,omitempty"`
}

// StrongDictionary maps Strong's numbers (H7225, G3056) to entries
type StrongDictionary map[string]StrongEntry

// Lookup finds an entry, accepting lowercase numbers
func (d StrongDictionary) Lookup(number string) (StrongEntry, bool) {
	key := strings.ToUpper(strings.TrimSpace(number))
	e, ok := d[key]
	if ok {
		e.Number = key
	}
	return e, ok
}

// Search returns entries whose number starts with the query or whose
// lemma, transliteration or definition contains it, ordered by number.
func (d StrongDictionary) Search(query string, limit int) []StrongEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []StrongEntry
	for number, e := range d {
		e.Number = number
		if q == "" ||
			strings.HasPrefix(strings.ToLower(number), q) ||
			strings.Contains(strings.ToLower(e.Lemma), q) ||
			strings.Contains(strings.ToLower(e.Translit), q) ||
			strings.Contains(strings.ToLower(e.Definition), q) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strongLess(out[i].Number, out[j].Number)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// strongLess orders H before G and numerically within a prefix
func strongLess(a, b string) bool {
	if len(a) == 0 || len(b) == 0 || a[0] != b[0] {
		return a > b
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
