package realtime

import "sync"

// subscriberBuffer is how many undelivered messages a subscriber may hold
// before new ones are dropped for it.
const subscriberBuffer = 16

// Broadcaster fans messages out to every subscriber.
type Broadcaster[T any] struct {
	mu   sync.Mutex
	subs map[chan T]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		subs: make(map[chan T]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Broadcaster[T]) Subscribe() chan T {
	ch := make(chan T, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster[T]) Unsubscribe(ch chan T) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Len reports the number of live subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish delivers msg to all subscribers without blocking.
func (b *Broadcaster[T]) Publish(msg T) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
			// Drop if the subscriber is lagging.
		}
	}
	b.mu.Unlock()
}
