package state

import (
	"strconv"

	"scriptorium/internal/events"
	"scriptorium/internal/ports"
)

// SidebarStore remembers whether the plan sidebar is collapsed.
// The value is stored as the bare string "true" or "false".
type SidebarStore struct {
	atom *Atom[bool]
}

// NewSidebarStore loads the collapsed flag
func NewSidebarStore(storage ports.KeyValueStore, warn func(error)) *SidebarStore {
	return &SidebarStore{
		atom: NewAtom(storage, KeySidebarCollapsed, false,
			WithEncoder(func(v bool) ([]byte, error) {
				return []byte(strconv.FormatBool(v)), nil
			}),
			WithDecoder(func(data []byte) (bool, error) {
				return strconv.ParseBool(string(data))
			}),
			WithWarn[bool](warn),
		),
	}
}

// Collapsed reports the current state
func (s *SidebarStore) Collapsed() bool {
	return s.atom.Get()
}

// SetCollapsed sets the state
func (s *SidebarStore) SetCollapsed(v bool) PersistResult {
	return s.atom.Set(v)
}

// Toggle flips the state
func (s *SidebarStore) Toggle() PersistResult {
	return s.atom.Update(func(cur bool) bool { return !cur })
}

// Subscribe registers fn for every change
func (s *SidebarStore) Subscribe(fn func(bool)) func() {
	return s.atom.Subscribe(fn)
}

// Bind connects the store to the sidebar topics of bus
func (s *SidebarStore) Bind(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(events.TopicToggleSidebar, func(events.Event) { s.Toggle() }),
		bus.Subscribe(events.TopicOpenSidebar, func(events.Event) { s.SetCollapsed(false) }),
		bus.Subscribe(events.TopicCloseSidebar, func(events.Event) { s.SetCollapsed(true) }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
