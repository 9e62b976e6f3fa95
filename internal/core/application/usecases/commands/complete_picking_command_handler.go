package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// CompletePickingCommandHandler transitions the order to picked and chains
// automatic packer assignment.
type CompletePickingCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
	assigner   *WorkerAssigner
}

// NewCompletePickingCommandHandler creates a handler for picking
// completion.
func NewCompletePickingCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher, assigner *WorkerAssigner,
) CompletePickingCommandHandler {
	return CompletePickingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		assigner:   assigner,
	}
}

// Handle completes the picking stage. The aggregate rejects the command
// while any item is still pending.
func (h *CompletePickingCommandHandler) Handle(ctx context.Context, cmd CompletePickingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.CompletePicking(time.Now())
	})
	if err != nil {
		return err
	}

	return h.assigner.TryAssign(ctx, cmd.OrderID(), services.RolePacker)
}
