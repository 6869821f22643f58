package state

import (
	"scriptorium/internal/domain"
	"scriptorium/internal/ports"
)

// NavigationStore remembers the last book and chapter viewed in one mode.
// It stores whatever it is given; legality is checked by resolution.
type NavigationStore struct {
	atom *Atom[domain.Position]
}

// NewNavigationStore loads the position saved under key
func NewNavigationStore(storage ports.KeyValueStore, key string, warn func(error)) *NavigationStore {
	return &NavigationStore{
		atom: NewAtom(storage, key, domain.Position{}, WithWarn[domain.Position](warn)),
	}
}

// Get returns the stored position, zero when nothing was stored
func (s *NavigationStore) Get() domain.Position {
	return s.atom.Get()
}

// Set records a position
func (s *NavigationStore) Set(p domain.Position) PersistResult {
	return s.atom.Set(p)
}

// Subscribe registers fn for every change
func (s *NavigationStore) Subscribe(fn func(domain.Position)) func() {
	return s.atom.Subscribe(fn)
}

// Key returns the storage key
func (s *NavigationStore) Key() string {
	return s.atom.Key()
}

// PositionKey returns the storage key used for mode
func PositionKey(mode domain.Mode) string {
	switch mode {
	case domain.ModeCommentary:
		return KeyCommentaryPosition
	case domain.ModeInterlinear:
		return KeyInterlinearPosition
	default:
		return KeyBiblePosition
	}
}
