package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// MarkOutOfStockCommandHandler marks an item out of stock, excluding it
// from the packing item set.
type MarkOutOfStockCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
}

// NewMarkOutOfStockCommandHandler creates a handler for out-of-stock marks.
func NewMarkOutOfStockCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher,
) MarkOutOfStockCommandHandler {
	return MarkOutOfStockCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle marks the item out of stock with the given reason.
func (h *MarkOutOfStockCommandHandler) Handle(ctx context.Context, cmd MarkOutOfStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.MarkOutOfStock(cmd.ItemID(), cmd.Reason(), time.Now())
	})
}
