package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAssignPackerCommandIsNotConstructed = errors.New(
	"AssignPackerCommand must be created via NewAssignPackerCommand constructor",
)

// AssignPackerCommand assigns a specific packer to a picked order.
type AssignPackerCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	packerID string

	guard guard.ConstructorGuard
}

// NewAssignPackerCommand creates a validated command to assign a packer.
func NewAssignPackerCommand(orderID kernel.UUID, packerID string) (AssignPackerCommand, error) {
	cmd := AssignPackerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPackerID(packerID),
	); err != nil {
		return AssignPackerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPackerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPackerCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignPackerCommand) OrderID() kernel.UUID { return c.orderID }

// PackerID returns the packer's identity.
func (c AssignPackerCommand) PackerID() string { return c.packerID }

func (c *AssignPackerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignPackerCommand) setPackerID(packerID string) error {
	if packerID == "" {
		return errs.NewValueIsRequiredError("packerId")
	}
	c.packerID = packerID
	return nil
}
