package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/otp"
	"orderflow/internal/core/ports"
)

// PickupOrderCommandHandler records the rider's pickup, moving the order
// through picked_up to out_for_delivery, and issues the delivery OTP to the
// customer.
type PickupOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
	gate       *otp.Gate
}

// NewPickupOrderCommandHandler creates a handler for order pickups.
func NewPickupOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher, gate *otp.Gate,
) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		gate:       gate,
	}
}

// Handle applies the pickup transition, then issues the OTP and publishes
// order.otp.issued addressed to the customer. Issuance happens after the
// transition committed so a rejected pickup never produces a code.
func (h *PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var customerID string
	now := time.Now()
	err := mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		customerID = aggregate.CustomerID()
		return aggregate.Pickup(now)
	})
	if err != nil {
		return err
	}

	record, err := h.gate.Issue(cmd.OrderID(), customerID, now)
	if err != nil {
		return err
	}

	h.publisher.PublishAll(ctx, []order.Event{{
		Name:       order.EventOrderOtpIssued,
		OrderID:    cmd.OrderID(),
		ActorID:    customerID,
		OccurredAt: now,
		Code:       record.Code,
	}})
	return nil
}
