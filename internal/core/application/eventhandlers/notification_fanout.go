// Package eventhandlers contains subscribers that react to domain events
// after a mutation committed. Handlers are best effort; a failure is logged
// and never propagates back to the command that produced the event.
package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// NotificationFanout translates domain events into inbox notifications. The
// customer is notified on every order-level transition; a newly assigned
// worker additionally gets an assignment notification. Item-level events stay
// within the store app and produce no notifications.
type NotificationFanout struct {
	orders   ports.OrderRepository
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewNotificationFanout creates the fan-out handler.
func NewNotificationFanout(
	orders ports.OrderRepository, notifier ports.Notifier, logger *slog.Logger,
) *NotificationFanout {
	return &NotificationFanout{
		orders:   orders,
		notifier: notifier,
		logger:   logger.With("component", "notification_fanout"),
	}
}

// Register subscribes the fan-out to every event on the bus and returns the
// unsubscribe function.
func (f *NotificationFanout) Register(bus ports.EventBus) func() {
	return bus.Subscribe(ports.TopicAllEvents, f.Handle)
}

// Handle produces the notifications for one event.
func (f *NotificationFanout) Handle(event order.Event) {
	ctx := context.Background()

	customerID, err := f.customerFor(ctx, event)
	if err != nil {
		f.logger.Warn("skipping notification for unknown order",
			"event", event.Name, "orderId", event.OrderID.String(), "error", err)
		return
	}

	switch event.Name {
	case order.EventOrderPlaced:
		f.notify(ctx, event, customerID, "Order Placed", "Your order has been placed")
	case order.EventOrderAccepted:
		f.notify(ctx, event, customerID, "Order Accepted", "The store accepted your order")
	case order.EventOrderRejected:
		f.notify(ctx, event, customerID, "Order Rejected", event.Reason)
	case order.EventOrderAssignedToPicker:
		f.notify(ctx, event, customerID, "Order Update", "A picker is collecting your items")
		f.notify(ctx, event, event.ActorID, "Picking Assignment",
			fmt.Sprintf("Order %s is ready for picking", event.OrderID))
	case order.EventOrderPicked:
		f.notify(ctx, event, customerID, "Order Update", "All items have been picked")
	case order.EventOrderAssignedToPacker:
		f.notify(ctx, event, customerID, "Order Update", "Your order is being packed")
		f.notify(ctx, event, event.ActorID, "Packing Assignment",
			fmt.Sprintf("Order %s is ready for packing", event.OrderID))
	case order.EventOrderPacked:
		f.notify(ctx, event, customerID, "Order Update", "Your order has been packed")
	case order.EventOrderAssignedToRider:
		f.notify(ctx, event, customerID, "Order Update", "A rider will deliver your order")
		f.notify(ctx, event, event.ActorID, "Delivery Assignment",
			fmt.Sprintf("Order %s is ready for delivery", event.OrderID))
	case order.EventOrderPickedUp:
		f.notify(ctx, event, customerID, "Out for Delivery", "Your order is on its way")
	case order.EventOrderOtpIssued:
		f.notify(ctx, event, customerID, "Delivery Code",
			fmt.Sprintf("Share code %s with your rider on handoff", event.Code))
	case order.EventOrderDelivered:
		f.notify(ctx, event, customerID, "Order Delivered", "Your order has been delivered")
	}
}

// customerFor resolves the notification recipient. The otp.issued event is
// addressed to the customer already and the order may mutate concurrently, so
// it short-circuits the lookup.
func (f *NotificationFanout) customerFor(ctx context.Context, event order.Event) (string, error) {
	if event.Name == order.EventOrderOtpIssued {
		return event.ActorID, nil
	}
	if event.Name == order.EventOrderPlaced {
		return event.ActorID, nil
	}

	aggregate, err := f.orders.Get(ctx, event.OrderID)
	if err != nil {
		return "", err
	}
	return aggregate.CustomerID(), nil
}

func (f *NotificationFanout) notify(
	ctx context.Context, event order.Event, targetActorID, title, message string,
) {
	if targetActorID == "" {
		return
	}
	if err := f.notifier.Notify(ctx, targetActorID, event.Name, title, message); err != nil {
		f.logger.Warn("failed to deliver notification",
			"event", event.Name, "actorId", targetActorID, "error", err)
	}
}
