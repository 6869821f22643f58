// Package events carries cross-component signals: navigation requests,
// sidebar toggles and preference changes. Delivery is synchronous and
// fire-and-forget; publishers never learn whether anyone listened.
package events

import (
	"fmt"
	"slices"
	"sync"
)

// Topic names a kind of event
type Topic string

const (
	TopicNavigate           Topic = "app:navigate"
	TopicToggleSidebar      Topic = "toggle-sidebar"
	TopicOpenSidebar        Topic = "open-sidebar"
	TopicCloseSidebar       Topic = "close-sidebar"
	TopicPreferencesChanged Topic = "bible-preferences-changed"
)

// NavigateDetail is the payload of TopicNavigate
type NavigateDetail struct {
	Book    string
	Chapter int
	Verses  string
}

// Describe renders the detail for logs
func (d NavigateDetail) Describe() string {
	return fmt.Sprintf(`book:%q chapter:%d verses:%q`, d.Book, d.Chapter, d.Verses)
}

// Event is what subscribers receive
type Event struct {
	Topic   Topic
	Payload any
}

// Handler reacts to an event
type Handler func(Event)

// Bus is a publish/subscribe hub. The zero value is not usable; use NewBus.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic]map[int]Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]Handler)}
}

// Subscribe registers h for topic and returns a function that removes it
func (b *Bus) Subscribe(topic Topic, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	b.subs[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish delivers payload to every current subscriber of topic, in
// subscription order. Handlers may subscribe or publish re-entrantly.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	ids := make([]int, 0, len(b.subs[topic]))
	for id := range b.subs[topic] {
		ids = append(ids, id)
	}
	handlers := make([]Handler, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, b.subs[topic][id])
	}
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	for _, h := range handlers {
		h(ev)
	}
}

// Navigate publishes a TopicNavigate event
func (b *Bus) Navigate(detail NavigateDetail) {
	b.Publish(TopicNavigate, detail)
}
