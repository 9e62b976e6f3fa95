package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// AssignPackerCommandHandler transitions a picked order to
// assigned_to_packer and registers it in the packer's projection.
type AssignPackerCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
}

// NewAssignPackerCommandHandler creates a handler for manual packer
// assignment.
func NewAssignPackerCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher,
) AssignPackerCommandHandler {
	return AssignPackerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle assigns the packer to the order.
func (h *AssignPackerCommandHandler) Handle(ctx context.Context, cmd AssignPackerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.AssignPacker(cmd.PackerID(), time.Now())
	})
}
