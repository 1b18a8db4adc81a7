package broadcast

import "sync"

// Event is one server-to-client notification.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

// Broadcaster is one room's pub/sub channel. Membership is tracked by
// identity so it survives independently of any one transport connection.
// Sends are fire-and-forget: a full subscriber channel drops the event.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[string]chan Event
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan Event),
	}
}

// Subscribe registers the identity and returns its event channel. A second
// subscription for the same identity replaces the first, closing it.
func (b *Broadcaster) Subscribe(identity string) chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if old, ok := b.subscribers[identity]; ok {
		close(old)
	}
	ch := make(chan Event, 16)
	b.subscribers[identity] = ch
	return ch
}

// Unsubscribe removes the identity and closes its channel.
func (b *Broadcaster) Unsubscribe(identity string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subscribers[identity]; ok {
		delete(b.subscribers, identity)
		close(ch)
	}
}

// Broadcast sends the event to every subscriber.
func (b *Broadcaster) Broadcast(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			// skip subscribers with full channels
		}
	}
}

// BroadcastExcept sends the event to every subscriber but one.
func (b *Broadcaster) BroadcastExcept(identity string, ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		if id == identity {
			continue
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// Unicast sends the event to a single identity, reporting whether it is
// subscribed.
func (b *Broadcaster) Unicast(identity string, ev Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.subscribers[identity]
	if !ok {
		return false
	}
	select {
	case ch <- ev:
	default:
	}
	return true
}

// Close drops every subscriber and closes their channels. Buffered events
// are still delivered before receivers observe the close.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for identity, ch := range b.subscribers {
		delete(b.subscribers, identity)
		close(ch)
	}
}

// Count returns the number of subscribed identities.
func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
