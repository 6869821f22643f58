package state

import (
	"encoding/json"
	"maps"
	"slices"

	"scriptorium/internal/domain"
	"scriptorium/internal/ports"
)

// IDSet is a persisted set of string identifiers, stored as an id→true
// object. Removal deletes the entry, so false values never persist.
type IDSet struct {
	atom *Atom[map[string]bool]
}

// NewIDSet loads the set saved under key
func NewIDSet(storage ports.KeyValueStore, key string, warn func(error)) *IDSet {
	return &IDSet{
		atom: NewAtom(storage, key, map[string]bool{},
			WithDecoder(decodeIDSet),
			WithWarn[map[string]bool](warn),
		),
	}
}

func decodeIDSet(data []byte) (map[string]bool, error) {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(raw))
	for id, on := range raw {
		if on {
			out[id] = true
		}
	}
	return out, nil
}

// Has reports whether id is in the set
func (s *IDSet) Has(id string) bool {
	return s.atom.Get()[id]
}

// Toggle adds id when absent and removes it when present.
// The returned bool is the new membership.
func (s *IDSet) Toggle(id string) (bool, PersistResult) {
	var on bool
	res := s.atom.Update(func(cur map[string]bool) map[string]bool {
		next := maps.Clone(cur)
		if next == nil {
			next = map[string]bool{}
		}
		if next[id] {
			delete(next, id)
		} else {
			next[id] = true
		}
		on = next[id]
		return next
	})
	return on, res
}

// IDs returns the members in ascending order
func (s *IDSet) IDs() []string {
	return slices.Sorted(maps.Keys(s.atom.Get()))
}

// Len returns the number of members
func (s *IDSet) Len() int {
	return len(s.atom.Get())
}

// Subscribe registers fn for every change
func (s *IDSet) Subscribe(fn func(map[string]bool)) func() {
	return s.atom.Subscribe(fn)
}

// HighlightStore is the set of highlighted verse IDs
type HighlightStore struct {
	*IDSet
}

// NewHighlightStore loads highlights from storage
func NewHighlightStore(storage ports.KeyValueStore, warn func(error)) *HighlightStore {
	return &HighlightStore{IDSet: NewIDSet(storage, KeyHighlights, warn)}
}

// IsHighlighted reports whether the verse is highlighted
func (s *HighlightStore) IsHighlighted(book string, chapter, verse int) bool {
	return s.Has(domain.VerseID(book, chapter, verse))
}

// InChapter returns the highlighted verse numbers of one chapter, ascending
func (s *HighlightStore) InChapter(book string, chapter int) []int {
	var verses []int
	for id := range s.atom.Get() {
		b, c, v, err := domain.ParseVerseID(id)
		if err != nil || b != book || c != chapter {
			continue
		}
		verses = append(verses, v)
	}
	slices.Sort(verses)
	return verses
}
