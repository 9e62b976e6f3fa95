package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// AssignPickerCommandHandler transitions an accepted order to
// assigned_to_picker and registers it in the picker's projection. Items are
// already pending, so the pick sub-workflow needs no separate setup.
type AssignPickerCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
}

// NewAssignPickerCommandHandler creates a handler for manual picker
// assignment.
func NewAssignPickerCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher,
) AssignPickerCommandHandler {
	return AssignPickerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle assigns the picker to the order.
func (h *AssignPickerCommandHandler) Handle(ctx context.Context, cmd AssignPickerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.AssignPicker(cmd.PickerID(), time.Now())
	})
}
