package navigation

import (
	"maps"
	"net/url"
	"slices"
	"sync"
)

// Location holds the current query parameters with a browsing history.
// Replace rewrites the current entry; Push adds a new one and drops any
// entries ahead of it.
type Location struct {
	mu      sync.Mutex
	entries []url.Values
	index   int
	nextID  int
	subs    map[int]func(url.Values)
}

// NewLocation starts a history at initial
func NewLocation(initial url.Values) *Location {
	return &Location{
		entries: []url.Values{cloneValues(initial)},
		subs:    make(map[int]func(url.Values)),
	}
}

// Current returns a copy of the current parameters
func (l *Location) Current() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneValues(l.entries[l.index])
}

// Replace rewrites the current entry
func (l *Location) Replace(v url.Values) {
	l.mu.Lock()
	l.entries[l.index] = cloneValues(v)
	subs := l.snapshot()
	l.mu.Unlock()
	notify(subs, v)
}

// Push appends a new entry
func (l *Location) Push(v url.Values) {
	l.mu.Lock()
	l.entries = append(l.entries[:l.index+1], cloneValues(v))
	l.index++
	subs := l.snapshot()
	l.mu.Unlock()
	notify(subs, v)
}

// Back moves to the previous entry. It reports false at the start.
func (l *Location) Back() bool {
	return l.move(-1)
}

// Forward moves to the next entry. It reports false at the end.
func (l *Location) Forward() bool {
	return l.move(1)
}

// Len returns the number of history entries
func (l *Location) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Subscribe registers fn for every change of the current entry
func (l *Location) Subscribe(fn func(url.Values)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

func (l *Location) move(step int) bool {
	l.mu.Lock()
	next := l.index + step
	if next < 0 || next >= len(l.entries) {
		l.mu.Unlock()
		return false
	}
	l.index = next
	v := cloneValues(l.entries[next])
	subs := l.snapshot()
	l.mu.Unlock()
	notify(subs, v)
	return true
}

func (l *Location) snapshot() []func(url.Values) {
	ids := slices.Sorted(maps.Keys(l.subs))
	out := make([]func(url.Values), 0, len(ids))
	for _, id := range ids {
		out = append(out, l.subs[id])
	}
	return out
}

func notify(subs []func(url.Values), v url.Values) {
	for _, fn := range subs {
		fn(cloneValues(v))
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = slices.Clone(vs)
	}
	return out
}
