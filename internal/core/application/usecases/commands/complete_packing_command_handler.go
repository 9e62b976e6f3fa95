package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// CompletePackingCommandHandler transitions the order to packed and chains
// automatic rider assignment.
type CompletePackingCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
	assigner   *WorkerAssigner
}

// NewCompletePackingCommandHandler creates a handler for packing
// completion.
func NewCompletePackingCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher, assigner *WorkerAssigner,
) CompletePackingCommandHandler {
	return CompletePackingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		assigner:   assigner,
	}
}

// Handle completes the packing stage. The aggregate rejects the command
// while any picked item has not been packed.
func (h *CompletePackingCommandHandler) Handle(ctx context.Context, cmd CompletePackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.CompletePacking(time.Now())
	})
	if err != nil {
		return err
	}

	return h.assigner.TryAssign(ctx, cmd.OrderID(), services.RoleRider)
}
