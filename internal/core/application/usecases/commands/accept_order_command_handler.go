package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// AcceptOrderCommandHandler transitions a placed order to accepted and, for
// categories that are picked from shelves, chains automatic picker
// assignment.
type AcceptOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
	assigner   *WorkerAssigner
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher, assigner *WorkerAssigner,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		assigner:   assigner,
	}
}

// Handle accepts the order. The picker auto-assignment runs after the
// acceptance committed; if no picker is available the order stays accepted
// and the assignment sweep retries.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var category order.Category
	err := mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		category = aggregate.Category()
		return aggregate.Accept(time.Now())
	})
	if err != nil {
		return err
	}

	if category.AutoAssignsPicker() {
		return h.assigner.TryAssign(ctx, cmd.OrderID(), services.RolePicker)
	}
	return nil
}
