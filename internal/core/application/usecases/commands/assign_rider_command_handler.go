package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// AssignRiderCommandHandler transitions a packed order to assigned_to_rider
// and registers it in the rider's projection.
type AssignRiderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
}

// NewAssignRiderCommandHandler creates a handler for manual rider
// assignment.
func NewAssignRiderCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle assigns the rider to the order.
func (h *AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.AssignRider(cmd.RiderID(), time.Now())
	})
}
