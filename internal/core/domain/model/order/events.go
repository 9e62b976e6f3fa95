package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// Event names, one per transition or item-level action. Used as the routing
// key on the event bus and as the notification type.
const (
	EventOrderPlaced           = "order.placed"
	EventOrderAccepted         = "order.accepted"
	EventOrderRejected         = "order.rejected"
	EventOrderAssignedToPicker = "order.assigned_to_picker"
	EventOrderItemScanned      = "order.item.scanned"
	EventOrderItemOutOfStock   = "order.item.out_of_stock"
	EventOrderPicked           = "order.picked"
	EventOrderAssignedToPacker = "order.assigned_to_packer"
	EventOrderItemPacked       = "order.item.packed"
	EventOrderPacked           = "order.packed"
	EventOrderAssignedToRider  = "order.assigned_to_rider"
	EventOrderPickedUp         = "order.picked_up"
	EventOrderOtpIssued        = "order.otp.issued"
	EventOrderDelivered        = "order.delivered"
)

// Event is a domain event recorded by the Order aggregate during a
// transition and drained after the mutation commits. Every event carries the
// order, the acting identity, and the occurrence time; the remaining fields
// are set per event type.
type Event struct {
	Name       string
	OrderID    kernel.UUID
	ActorID    string
	OccurredAt time.Time

	// Status is the order status after the transition, in wire form.
	Status string

	// ItemID is set on item-level events.
	ItemID string

	// Reason is set on order.rejected and order.item.out_of_stock.
	Reason string

	// PackageType is set on order.item.packed.
	PackageType string

	// Code is set on order.otp.issued.
	Code string
}
