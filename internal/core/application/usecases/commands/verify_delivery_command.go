package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCommand must be created via NewVerifyDeliveryCommand constructor",
)

// VerifyDeliveryCommand represents the rider presenting the customer's OTP
// to confirm the handoff.
type VerifyDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	presentedOtp string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCommand creates a validated command to verify delivery.
func NewVerifyDeliveryCommand(orderID kernel.UUID, presentedOtp string) (VerifyDeliveryCommand, error) {
	cmd := VerifyDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPresentedOtp(presentedOtp),
	); err != nil {
		return VerifyDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c VerifyDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// PresentedOtp returns the code presented by the customer.
func (c VerifyDeliveryCommand) PresentedOtp() string { return c.presentedOtp }

func (c *VerifyDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *VerifyDeliveryCommand) setPresentedOtp(presentedOtp string) error {
	if presentedOtp == "" {
		return errs.NewValueIsRequiredError("presentedOtp")
	}
	c.presentedOtp = presentedOtp
	return nil
}
