package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrMarkPackedCommandIsNotConstructed = errors.New(
	"MarkPackedCommand must be created via NewMarkPackedCommand constructor",
)

// MarkPackedCommand represents a packer recording a packed item together
// with its package type.
type MarkPackedCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	itemID      kernel.UUID
	packageType string

	guard guard.ConstructorGuard
}

// NewMarkPackedCommand creates a validated command to mark an item packed.
func NewMarkPackedCommand(orderID, itemID kernel.UUID, packageType string) (MarkPackedCommand, error) {
	cmd := MarkPackedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setPackageType(packageType),
	); err != nil {
		return MarkPackedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPackedCommand) Validate() error {
	return c.guard.Validate(ErrMarkPackedCommandIsNotConstructed)
}

// OrderID returns the order being packed.
func (c MarkPackedCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the packed item.
func (c MarkPackedCommand) ItemID() kernel.UUID { return c.itemID }

// PackageType returns the package used (e.g. "paper_bag", "box").
func (c MarkPackedCommand) PackageType() string { return c.packageType }

func (c *MarkPackedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkPackedCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *MarkPackedCommand) setPackageType(packageType string) error {
	if packageType == "" {
		return errs.NewValueIsRequiredError("packageType")
	}
	c.packageType = packageType
	return nil
}
