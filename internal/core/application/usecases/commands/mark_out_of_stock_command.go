package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrMarkOutOfStockCommandIsNotConstructed = errors.New(
	"MarkOutOfStockCommand must be created via NewMarkOutOfStockCommand constructor",
)

// MarkOutOfStockCommand represents a picker marking an item unavailable.
type MarkOutOfStockCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewMarkOutOfStockCommand creates a validated command to mark an item out
// of stock.
func NewMarkOutOfStockCommand(orderID, itemID kernel.UUID, reason string) (MarkOutOfStockCommand, error) {
	cmd := MarkOutOfStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setReason(reason),
	); err != nil {
		return MarkOutOfStockCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOutOfStockCommand) Validate() error {
	return c.guard.Validate(ErrMarkOutOfStockCommandIsNotConstructed)
}

// OrderID returns the order being picked.
func (c MarkOutOfStockCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the unavailable item.
func (c MarkOutOfStockCommand) ItemID() kernel.UUID { return c.itemID }

// Reason returns why the item is unavailable.
func (c MarkOutOfStockCommand) Reason() string { return c.reason }

func (c *MarkOutOfStockCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkOutOfStockCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *MarkOutOfStockCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
