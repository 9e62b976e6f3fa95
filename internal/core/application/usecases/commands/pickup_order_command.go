package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrPickupOrderCommandIsNotConstructed = errors.New(
	"PickupOrderCommand must be created via NewPickupOrderCommand constructor",
)

// PickupOrderCommand represents the rider collecting the order from the
// store.
type PickupOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPickupOrderCommand creates a validated command for the pickup.
func NewPickupOrderCommand(orderID kernel.UUID) (PickupOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PickupOrderCommand{}, err
	}
	return PickupOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickupOrderCommandIsNotConstructed)
}

// OrderID returns the order being collected.
func (c PickupOrderCommand) OrderID() kernel.UUID { return c.orderID }
