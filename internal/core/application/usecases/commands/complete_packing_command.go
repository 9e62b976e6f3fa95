package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrCompletePackingCommandIsNotConstructed = errors.New(
	"CompletePackingCommand must be created via NewCompletePackingCommand constructor",
)

// CompletePackingCommand closes the packing stage once every picked item
// has been packed.
type CompletePackingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePackingCommand creates a validated command to complete
// packing.
func NewCompletePackingCommand(orderID kernel.UUID) (CompletePackingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompletePackingCommand{}, err
	}
	return CompletePackingCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePackingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePackingCommandIsNotConstructed)
}

// OrderID returns the order whose packing is complete.
func (c CompletePackingCommand) OrderID() kernel.UUID { return c.orderID }
