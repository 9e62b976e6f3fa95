package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/otp"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// VerifyDeliveryCommandHandler consumes the OTP gate and transitions the
// order to delivered on a match. A mismatch or missing code leaves both the
// order and, where applicable, the OTP record untouched.
type VerifyDeliveryCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
	gate       *otp.Gate
}

// NewVerifyDeliveryCommandHandler creates a handler for delivery
// verification.
func NewVerifyDeliveryCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher, gate *otp.Gate,
) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		gate:       gate,
	}
}

// Handle verifies the presented code and delivers the order. The order's
// status is checked before the gate is consulted so an out-of-sequence
// command cannot consume a valid code.
func (h *VerifyDeliveryCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		status := aggregate.Status()
		if status != order.PickedUp && status != order.OutForDelivery {
			return errs.NewInvalidTransitionError("deliver", status.String())
		}

		if err := h.gate.Verify(cmd.OrderID(), cmd.PresentedOtp(), now); err != nil {
			return err
		}

		return aggregate.Deliver(now)
	})
}
