package events

import "testing"

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(TopicToggleSidebar, func(Event) { got = append(got, "a") })
	bus.Subscribe(TopicToggleSidebar, func(Event) { got = append(got, "b") })
	bus.Subscribe(TopicOpenSidebar, func(Event) { got = append(got, "other") })

	bus.Publish(TopicToggleSidebar, nil)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("delivered = %v, want [a b]", got)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	unsubscribe := bus.Subscribe(TopicCloseSidebar, func(Event) { calls++ })

	bus.Publish(TopicCloseSidebar, nil)
	unsubscribe()
	bus.Publish(TopicCloseSidebar, nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBus_NavigatePayload(t *testing.T) {
	bus := NewBus()
	var detail NavigateDetail
	bus.Subscribe(TopicNavigate, func(ev Event) {
		detail = ev.Payload.(NavigateDetail)
	})

	bus.Navigate(NavigateDetail{Book: "exo", Chapter: 3, Verses: "1-4"})

	if detail.Book != "exo" || detail.Chapter != 3 || detail.Verses != "1-4" {
		t.Errorf("detail = %+v", detail)
	}
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	NewBus().Publish(TopicPreferencesChanged, "ignored")
}

func TestBus_ReentrantPublish(t *testing.T) {
	bus := NewBus()
	closed := false
	bus.Subscribe(TopicCloseSidebar, func(Event) { closed = true })
	bus.Subscribe(TopicToggleSidebar, func(Event) { bus.Publish(TopicCloseSidebar, nil) })

	bus.Publish(TopicToggleSidebar, nil)
	if !closed {
		t.Error("re-entrant publish not delivered")
	}
}
