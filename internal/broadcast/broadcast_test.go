package broadcast

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestNewBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	if b == nil {
		t.Fatal("NewBroadcaster() returned nil")
	}
	if b.Count() != 0 {
		t.Errorf("new broadcaster Count = %d, want 0", b.Count())
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	ch := b.Subscribe("p1")
	if ch == nil {
		t.Fatal("Subscribe() returned nil")
	}
	if b.Count() != 1 {
		t.Errorf("Count = %d, want 1", b.Count())
	}

	b.Unsubscribe("p1")
	if b.Count() != 0 {
		t.Errorf("Count after unsubscribe = %d, want 0", b.Count())
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestSubscribe_ReplacesExisting(t *testing.T) {
	b := NewBroadcaster()

	first := b.Subscribe("p1")
	second := b.Subscribe("p1")

	if _, ok := <-first; ok {
		t.Error("first channel should be closed after resubscribe")
	}
	if b.Count() != 1 {
		t.Errorf("Count = %d, want 1", b.Count())
	}

	b.Broadcast(Event{Name: "ping"})
	if ev := recv(t, second); ev.Name != "ping" {
		t.Errorf("event name = %q, want ping", ev.Name)
	}
}

func TestBroadcast_AllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe("p1")
	ch2 := b.Subscribe("p2")

	b.Broadcast(Event{Name: "news", Data: "text"})

	for _, ch := range []chan Event{ch1, ch2} {
		ev := recv(t, ch)
		if ev.Name != "news" || ev.Data != "text" {
			t.Errorf("got %+v, want news/text", ev)
		}
	}
}

func TestBroadcastExcept(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe("p1")
	ch2 := b.Subscribe("p2")

	b.BroadcastExcept("p1", Event{Name: "update"})

	if ev := recv(t, ch2); ev.Name != "update" {
		t.Errorf("p2 got %+v", ev)
	}
	select {
	case ev := <-ch1:
		t.Errorf("p1 should not receive, got %+v", ev)
	default:
	}
}

func TestUnicast(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe("p1")
	ch2 := b.Subscribe("p2")

	if !b.Unicast("p2", Event{Name: "tip"}) {
		t.Error("Unicast to subscribed identity should return true")
	}
	if ev := recv(t, ch2); ev.Name != "tip" {
		t.Errorf("p2 got %+v", ev)
	}
	select {
	case ev := <-ch1:
		t.Errorf("p1 should not receive unicast, got %+v", ev)
	default:
	}

	if b.Unicast("nonexistent", Event{Name: "tip"}) {
		t.Error("Unicast to unknown identity should return false")
	}
}

func TestClose(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe("p1")
	ch2 := b.Subscribe("p2")

	b.Broadcast(Event{Name: "last"})
	b.Close()

	if b.Count() != 0 {
		t.Errorf("Count = %d after Close, want 0", b.Count())
	}
	for _, ch := range []chan Event{ch1, ch2} {
		if ev, ok := <-ch; !ok || ev.Name != "last" {
			t.Errorf("buffered event should survive Close, got %+v (ok=%v)", ev, ok)
		}
		if _, ok := <-ch; ok {
			t.Error("channel should be closed after draining")
		}
	}
}

func TestBroadcast_DropsWhenFull(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe("p1")

	// Fill the channel buffer.
	for i := 0; i < cap(ch); i++ {
		b.Broadcast(Event{Name: "fill"})
	}

	done := make(chan bool)
	go func() {
		b.Broadcast(Event{Name: "overflow"})
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Broadcast blocked on full channel")
	}
}
