package inmemory

import (
	"context"
	"sync"

	"orderflow/internal/core/ports"

	"orderflow/internal/core/domain/model/order"
)

// EventBus is an in-process publish/subscribe channel. Each published event
// is routed to the subscribers of its actor identity, of its event name, and
// of the wildcard topic; delivery is synchronous and best effort.
type EventBus struct {
	mu     sync.RWMutex
	nextID int
	topics map[string]map[int]ports.EventHandler
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{
		topics: make(map[string]map[int]ports.EventHandler),
	}
}

// Publish delivers the event once to every matching subscription. Handlers
// run on the caller's goroutine; Publish never fails.
func (b *EventBus) Publish(_ context.Context, event order.Event) error {
	topics := []string{event.Name, ports.TopicAllEvents}
	if event.ActorID != "" && event.ActorID != event.Name {
		topics = append(topics, event.ActorID)
	}

	b.mu.RLock()
	var handlers []ports.EventHandler
	for _, topic := range topics {
		for _, h := range b.topics[topic] {
			handlers = append(handlers, h)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
	return nil
}

// Subscribe registers a handler for a topic and returns its unsubscribe
// function. Unsubscribing twice is safe.
func (b *EventBus) Subscribe(topic string, handler ports.EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.topics[topic] == nil {
		b.topics[topic] = make(map[int]ports.EventHandler)
	}
	id := b.nextID
	b.nextID++
	b.topics[topic][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.topics[topic], id)
	}
}
