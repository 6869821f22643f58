// Package navigation resolves which book, chapter and verse a view shows
// and keeps the location parameters and the persisted position in step.
package navigation

import (
	"net/url"
	"strconv"
	"strings"

	"scriptorium/internal/domain"
)

// Location parameter names
const (
	ParamBook    = "book"
	ParamChapter = "chapter"
	ParamVerse   = "verse"
	ParamVerses  = "verses"
	ParamSearch  = "search"
	ParamType    = "type"
)

// Query is the parsed form of the location parameters. Numeric fields
// are 0 when absent or not a positive integer.
type Query struct {
	Book    string
	Chapter int
	Verse   int
	Verses  string
	Search  string
	Type    string
}

// ParseQuery reads the known parameters of v
func ParseQuery(v url.Values) Query {
	return Query{
		Book:    strings.ToLower(strings.TrimSpace(v.Get(ParamBook))),
		Chapter: positive(v.Get(ParamChapter)),
		Verse:   positive(v.Get(ParamVerse)),
		Verses:  strings.TrimSpace(v.Get(ParamVerses)),
		Search:  v.Get(ParamSearch),
		Type:    v.Get(ParamType),
	}
}

// ParseRawQuery parses an encoded query string such as "book=exo&chapter=3"
func ParseRawQuery(raw string) Query {
	v, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Query{}
	}
	return ParseQuery(v)
}

// Values encodes the non-empty fields of q
func (q Query) Values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set(ParamBook, q.Book)
	if q.Chapter > 0 {
		v.Set(ParamChapter, strconv.Itoa(q.Chapter))
	}
	if q.Verse > 0 {
		v.Set(ParamVerse, strconv.Itoa(q.Verse))
	}
	set(ParamVerses, q.Verses)
	set(ParamSearch, q.Search)
	set(ParamType, q.Type)
	return v
}

// VerseNumbers expands the verses parameter, clamped to max verses
func (q Query) VerseNumbers(max int) []int {
	if q.Verses == "" {
		return nil
	}
	return domain.ParseVerseRange(q.Verses, max)
}

func positive(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
