package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAssignPickerCommandIsNotConstructed = errors.New(
	"AssignPickerCommand must be created via NewAssignPickerCommand constructor",
)

// AssignPickerCommand assigns a specific picker to an accepted order,
// bypassing the automatic dispatch strategy.
type AssignPickerCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	pickerID string

	guard guard.ConstructorGuard
}

// NewAssignPickerCommand creates a validated command to assign a picker.
func NewAssignPickerCommand(orderID kernel.UUID, pickerID string) (AssignPickerCommand, error) {
	cmd := AssignPickerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPickerID(pickerID),
	); err != nil {
		return AssignPickerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPickerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPickerCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignPickerCommand) OrderID() kernel.UUID { return c.orderID }

// PickerID returns the picker's identity.
func (c AssignPickerCommand) PickerID() string { return c.pickerID }

func (c *AssignPickerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignPickerCommand) setPickerID(pickerID string) error {
	if pickerID == "" {
		return errs.NewValueIsRequiredError("pickerId")
	}
	c.pickerID = pickerID
	return nil
}
