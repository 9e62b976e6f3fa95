package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/ports"

	"orderflow/internal/core/domain/model/order"
)

// EventPublisher pushes drained domain events onto the bus after a commit.
// Publication is fire and forget: failures are logged and never surfaced to
// the command's caller, since the state mutation has already committed.
type EventPublisher struct {
	bus    ports.EventBus
	logger *slog.Logger
}

// NewEventPublisher creates a publisher over the bus.
func NewEventPublisher(bus ports.EventBus, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		bus:    bus,
		logger: logger.With("component", "event_publisher"),
	}
}

// PublishAll publishes the events in order.
func (p *EventPublisher) PublishAll(ctx context.Context, events []order.Event) {
	for _, event := range events {
		if err := p.bus.Publish(ctx, event); err != nil {
			p.logger.Warn("event publish failed",
				"event", event.Name,
				"orderId", event.OrderID.String(),
				"error", err)
		}
	}
}
