package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Message is one payload published on a named topic.
type Message struct {
	Topic string
	Data  []byte
}

// Bus is an in-process publish/subscribe channel addressed by topic name.
// Publishing never waits for delivery.
type Bus struct {
	mu     sync.RWMutex
	topics map[string]*Broadcaster[Message]
}

// NewBus creates a bus with no topics.
func NewBus() *Bus {
	return &Bus{topics: make(map[string]*Broadcaster[Message])}
}

// Topic returns the broadcaster for name, creating it on first use.
func (b *Bus) Topic(name string) *Broadcaster[Message] {
	b.mu.RLock()
	hub, ok := b.topics[name]
	b.mu.RUnlock()
	if ok {
		return hub
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if hub, ok = b.topics[name]; ok {
		return hub
	}
	hub = NewBroadcaster[Message]()
	b.topics[name] = hub
	return hub
}

// Subscribe registers a subscriber on the topic.
func (b *Bus) Subscribe(topic string) chan Message {
	return b.Topic(topic).Subscribe()
}

// Unsubscribe removes a subscriber from the topic and closes its channel.
func (b *Bus) Unsubscribe(topic string, ch chan Message) {
	b.Topic(topic).Unsubscribe(ch)
}

// Publish sends raw bytes to every subscriber of topic.
func (b *Bus) Publish(topic string, data []byte) {
	b.Topic(topic).Publish(Message{Topic: topic, Data: data})
}

// PublishJSON encodes v and publishes it on topic.
func (b *Bus) PublishJSON(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", topic, err)
	}
	b.Publish(topic, data)
	return nil
}
