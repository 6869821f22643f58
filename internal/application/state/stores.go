package state

import (
	"scriptorium/internal/domain"
	"scriptorium/internal/events"
	"scriptorium/internal/ports"
)

// Stores bundles every persistent container of the application
type Stores struct {
	Preferences   *PreferenceStore
	Bible         *NavigationStore
	Commentary    *NavigationStore
	Interlinear   *NavigationStore
	Highlights    *HighlightStore
	FavoritePlans *IDSet
	SavedPlans    *IDSet
	Sidebar       *SidebarStore
	PlanProgress  *PlanProgressStore
	Tracker       *TrackerStore
}

// Open loads every store from storage. warn, when non-nil, is called for
// each write that fails to persist.
func Open(storage ports.KeyValueStore, bus *events.Bus, warn func(error)) *Stores {
	s := &Stores{
		Preferences:   NewPreferenceStore(storage, bus, warn),
		Bible:         NewNavigationStore(storage, KeyBiblePosition, warn),
		Commentary:    NewNavigationStore(storage, KeyCommentaryPosition, warn),
		Interlinear:   NewNavigationStore(storage, KeyInterlinearPosition, warn),
		Highlights:    NewHighlightStore(storage, warn),
		FavoritePlans: NewIDSet(storage, KeyFavoritePlans, warn),
		SavedPlans:    NewIDSet(storage, KeySavedPlans, warn),
		Sidebar:       NewSidebarStore(storage, warn),
		PlanProgress:  NewPlanProgressStore(storage, warn),
		Tracker:       NewTrackerStore(storage, warn),
	}
	if bus != nil {
		s.Sidebar.Bind(bus)
	}
	return s
}

// Navigation returns the position store of mode
func (s *Stores) Navigation(mode domain.Mode) *NavigationStore {
	switch mode {
	case domain.ModeCommentary:
		return s.Commentary
	case domain.ModeInterlinear:
		return s.Interlinear
	default:
		return s.Bible
	}
}
