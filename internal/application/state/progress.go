package state

import (
	"encoding/json"
	"maps"

	"scriptorium/internal/domain"
	"scriptorium/internal/ports"
)

// PlanProgressStore keeps completion state for every reading plan, keyed by
// plan id.
type PlanProgressStore struct {
	atom *Atom[map[string]domain.PlanProgress]
}

// NewPlanProgressStore loads plan progress from storage
func NewPlanProgressStore(storage ports.KeyValueStore, warn func(error)) *PlanProgressStore {
	return &PlanProgressStore{
		atom: NewAtom(storage, KeyPlanProgress, map[string]domain.PlanProgress{},
			WithDecoder(decodePlanProgress),
			WithWarn[map[string]domain.PlanProgress](warn),
		),
	}
}

func decodePlanProgress(data []byte) (map[string]domain.PlanProgress, error) {
	var raw map[string]domain.PlanProgress
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]domain.PlanProgress, len(raw))
	for id, p := range raw {
		out[id] = p.Canonical()
	}
	return out, nil
}

// Get returns the progress of one plan, empty when never touched
func (s *PlanProgressStore) Get(planID string) domain.PlanProgress {
	return s.atom.Get()[planID].Clone()
}

// All returns a copy of every plan's progress
func (s *PlanProgressStore) All() map[string]domain.PlanProgress {
	cur := s.atom.Get()
	out := make(map[string]domain.PlanProgress, len(cur))
	for id, p := range cur {
		out[id] = p.Clone()
	}
	return out
}

// Update replaces the progress of planID with fn's result
func (s *PlanProgressStore) Update(planID string, fn func(domain.PlanProgress) domain.PlanProgress) PersistResult {
	return s.atom.Update(func(cur map[string]domain.PlanProgress) map[string]domain.PlanProgress {
		next := maps.Clone(cur)
		if next == nil {
			next = map[string]domain.PlanProgress{}
		}
		next[planID] = fn(cur[planID].Clone())
		return next
	})
}

// Subscribe registers fn for every change
func (s *PlanProgressStore) Subscribe(fn func(map[string]domain.PlanProgress)) func() {
	return s.atom.Subscribe(fn)
}

// TrackerStore keeps the set of chapters read per book
type TrackerStore struct {
	atom *Atom[domain.TrackerProgress]
}

// NewTrackerStore loads tracker progress from storage
func NewTrackerStore(storage ports.KeyValueStore, warn func(error)) *TrackerStore {
	return &TrackerStore{
		atom: NewAtom(storage, KeyTrackerProgress, domain.TrackerProgress{},
			WithDecoder(decodeTracker),
			WithWarn[domain.TrackerProgress](warn),
		),
	}
}

func decodeTracker(data []byte) (domain.TrackerProgress, error) {
	var raw domain.TrackerProgress
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.Canonical(), nil
}

// Get returns a copy of the current progress
func (s *TrackerStore) Get() domain.TrackerProgress {
	return s.atom.Get().Clone()
}

// Update replaces the progress with fn's result
func (s *TrackerStore) Update(fn func(domain.TrackerProgress) domain.TrackerProgress) PersistResult {
	return s.atom.Update(fn)
}

// Reset clears every chapter
func (s *TrackerStore) Reset() PersistResult {
	return s.atom.Set(domain.TrackerProgress{})
}

// Subscribe registers fn for every change
func (s *TrackerStore) Subscribe(fn func(domain.TrackerProgress)) func() {
	return s.atom.Subscribe(fn)
}
