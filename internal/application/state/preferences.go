package state

import (
	"encoding/json"
	"sync"

	"scriptorium/internal/domain"
	"scriptorium/internal/events"
	"scriptorium/internal/ports"
)

// PreferenceApplier receives every preference change and applies it to the
// presentation layer (styles, wrap width, speech settings).
type PreferenceApplier interface {
	ApplyPreferences(domain.Preferences)
}

// ApplierFunc adapts a function to PreferenceApplier
type ApplierFunc func(domain.Preferences)

// ApplyPreferences calls f(p)
func (f ApplierFunc) ApplyPreferences(p domain.Preferences) {
	f(p)
}

// PreferenceStore owns the reader's display and accessibility settings
type PreferenceStore struct {
	atom *Atom[domain.Preferences]
	bus  *events.Bus

	mu       sync.Mutex
	appliers []PreferenceApplier
}

// NewPreferenceStore loads preferences from storage. Stored objects missing
// fields are backfilled from the defaults and out-of-range values clamped.
func NewPreferenceStore(storage ports.KeyValueStore, bus *events.Bus, warn func(error)) *PreferenceStore {
	atom := NewAtom(storage, KeyPreferences, domain.DefaultPreferences(),
		WithDecoder(decodePreferences),
		WithWarn[domain.Preferences](warn),
	)
	return &PreferenceStore{atom: atom, bus: bus}
}

func decodePreferences(data []byte) (domain.Preferences, error) {
	p := domain.DefaultPreferences()
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.DefaultPreferences(), err
	}
	return p.Normalize(), nil
}

// Get returns the current preferences
func (s *PreferenceStore) Get() domain.Preferences {
	return s.atom.Get()
}

// Set replaces every preference
func (s *PreferenceStore) Set(p domain.Preferences) PersistResult {
	p = p.Normalize()
	res := s.atom.Set(p)
	s.apply(p)
	return res
}

// Patch changes only the fields present in patch
func (s *PreferenceStore) Patch(patch domain.PreferencesPatch) PersistResult {
	var next domain.Preferences
	res := s.atom.Update(func(cur domain.Preferences) domain.Preferences {
		next = patch.Apply(cur).Normalize()
		return next
	})
	s.apply(next)
	return res
}

// Reset restores the defaults
func (s *PreferenceStore) Reset() PersistResult {
	return s.Set(domain.DefaultPreferences())
}

// Subscribe registers fn for every change
func (s *PreferenceStore) Subscribe(fn func(domain.Preferences)) func() {
	return s.atom.Subscribe(fn)
}

// AddApplier registers a and applies the current preferences to it at once
func (s *PreferenceStore) AddApplier(a PreferenceApplier) {
	s.mu.Lock()
	s.appliers = append(s.appliers, a)
	s.mu.Unlock()
	a.ApplyPreferences(s.Get())
}

func (s *PreferenceStore) apply(p domain.Preferences) {
	s.mu.Lock()
	appliers := append([]PreferenceApplier(nil), s.appliers...)
	s.mu.Unlock()

	for _, a := range appliers {
		a.ApplyPreferences(p)
	}
	if s.bus != nil {
		s.bus.Publish(events.TopicPreferencesChanged, p)
	}
}
