package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// MarkPackedCommandHandler records a packed item. Only picked items can be
// packed; out-of-stock items are rejected by the aggregate.
type MarkPackedCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
}

// NewMarkPackedCommandHandler creates a handler for packed marks.
func NewMarkPackedCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher,
) MarkPackedCommandHandler {
	return MarkPackedCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle marks the item packed with its package type.
func (h *MarkPackedCommandHandler) Handle(ctx context.Context, cmd MarkPackedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.MarkPacked(cmd.ItemID(), cmd.PackageType(), time.Now())
	})
}
