package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrCompletePickingCommandIsNotConstructed = errors.New(
	"CompletePickingCommand must be created via NewCompletePickingCommand constructor",
)

// CompletePickingCommand closes the picking stage once every item reached a
// terminal pick state.
type CompletePickingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePickingCommand creates a validated command to complete picking.
func NewCompletePickingCommand(orderID kernel.UUID) (CompletePickingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompletePickingCommand{}, err
	}
	return CompletePickingCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePickingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickingCommandIsNotConstructed)
}

// OrderID returns the order whose picking is complete.
func (c CompletePickingCommand) OrderID() kernel.UUID { return c.orderID }
