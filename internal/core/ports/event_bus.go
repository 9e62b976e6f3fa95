package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// TopicAllEvents subscribes a handler to every published event. Used by the
// notification fan-out.
const TopicAllEvents = "*"

// EventHandler consumes one published event. Handlers must not block the
// publisher; long work belongs in the handler's own goroutine.
type EventHandler func(event order.Event)

// EventBus is the publish/subscribe channel carrying domain events to
// per-actor and per-event-type subscribers. Delivery is best effort: a
// topic without subscribers is simply dropped and publication failures
// never roll back the mutation that produced the event.
type EventBus interface {
	// Publish routes the event to the subscribers of its actor identity,
	// of its event name, and of TopicAllEvents. Each subscription receives
	// the event exactly once per Publish call.
	Publish(ctx context.Context, event order.Event) error

	// Subscribe registers a handler for a topic: an actor identity, an
	// event name, or TopicAllEvents. The returned function removes the
	// subscription; calling it twice is safe.
	Subscribe(topic string, handler EventHandler) (unsubscribe func())
}
