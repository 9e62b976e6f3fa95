package eventhandlers_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/adapters/out/inmemory"
	"orderflow/internal/core/application/eventhandlers"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fanoutFixture struct {
	store  *inmemory.Store
	bus    *inmemory.EventBus
	inbox  *inmemory.InboxStore
	fanout *eventhandlers.NotificationFanout
}

func newFanoutFixture(t *testing.T) *fanoutFixture {
	t.Helper()

	store := inmemory.NewStore()
	bus := inmemory.NewEventBus()
	inbox := inmemory.NewInboxStore(10)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fanout := eventhandlers.NewNotificationFanout(inmemory.NewRepository(store), inbox, logger)
	t.Cleanup(fanout.Register(bus))

	return &fanoutFixture{store: store, bus: bus, inbox: inbox, fanout: fanout}
}

func (f *fanoutFixture) placeOrder(t *testing.T, customerID string) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Milk", 1, "pcs", "111")
	require.NoError(t, err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID, "store-1", order.CategoryGrocery,
		[]*order.Item{item}, 10, 2, "12 Main St", "card", "",
		time.Now())
	require.NoError(t, err)
	require.NoError(t, inmemory.NewRepository(f.store).Add(context.Background(), aggregate))
	return aggregate
}

func TestNotificationFanout_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should notify customer on acceptance", func(t *testing.T) {
		f := newFanoutFixture(t)
		aggregate := f.placeOrder(t, "customer-1")

		require.NoError(t, f.bus.Publish(ctx, order.Event{
			Name:       order.EventOrderAccepted,
			OrderID:    aggregate.ID(),
			ActorID:    "store-1",
			OccurredAt: time.Now(),
			Status:     order.Accepted.String(),
		}))

		got, err := f.inbox.Inbox(ctx, "customer-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Order Accepted", got[0].Title())
		assert.Equal(t, order.EventOrderAccepted, got[0].Type())
	})

	t.Run("should notify both customer and worker on assignment", func(t *testing.T) {
		f := newFanoutFixture(t)
		aggregate := f.placeOrder(t, "customer-1")

		require.NoError(t, f.bus.Publish(ctx, order.Event{
			Name:       order.EventOrderAssignedToPicker,
			OrderID:    aggregate.ID(),
			ActorID:    "picker-1",
			OccurredAt: time.Now(),
			Status:     order.AssignedToPicker.String(),
		}))

		customerInbox, err := f.inbox.Inbox(ctx, "customer-1")
		require.NoError(t, err)
		require.Len(t, customerInbox, 1)

		pickerInbox, err := f.inbox.Inbox(ctx, "picker-1")
		require.NoError(t, err)
		require.Len(t, pickerInbox, 1)
		assert.Equal(t, "Picking Assignment", pickerInbox[0].Title())
		assert.Contains(t, pickerInbox[0].Message(), aggregate.ID().String())
	})

	t.Run("should deliver the otp code to the customer", func(t *testing.T) {
		f := newFanoutFixture(t)
		aggregate := f.placeOrder(t, "customer-1")

		require.NoError(t, f.bus.Publish(ctx, order.Event{
			Name:       order.EventOrderOtpIssued,
			OrderID:    aggregate.ID(),
			ActorID:    "customer-1",
			OccurredAt: time.Now(),
			Code:       "482913",
		}))

		got, err := f.inbox.Inbox(ctx, "customer-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Delivery Code", got[0].Title())
		assert.Contains(t, got[0].Message(), "482913")
	})

	t.Run("should skip item level events", func(t *testing.T) {
		f := newFanoutFixture(t)
		aggregate := f.placeOrder(t, "customer-1")

		require.NoError(t, f.bus.Publish(ctx, order.Event{
			Name:       order.EventOrderItemScanned,
			OrderID:    aggregate.ID(),
			ActorID:    "picker-1",
			OccurredAt: time.Now(),
			ItemID:     kernel.NewUUID().String(),
		}))

		got, err := f.inbox.Inbox(ctx, "customer-1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("should drop events for unknown orders", func(t *testing.T) {
		f := newFanoutFixture(t)

		require.NoError(t, f.bus.Publish(ctx, order.Event{
			Name:       order.EventOrderAccepted,
			OrderID:    kernel.NewUUID(),
			ActorID:    "store-1",
			OccurredAt: time.Now(),
		}))

		got, err := f.inbox.Inbox(ctx, "customer-1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
