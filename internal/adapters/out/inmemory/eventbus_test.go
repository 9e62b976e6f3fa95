package inmemory_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/inmemory"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(name, actorID string) order.Event {
	return order.Event{
		Name:       name,
		OrderID:    kernel.NewUUID(),
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
}

func TestEventBus_PublishRoutesToActorSubscribers(t *testing.T) {
	bus := inmemory.NewEventBus()
	var received []order.Event
	bus.Subscribe("customer-1", func(e order.Event) {
		received = append(received, e)
	})

	err := bus.Publish(context.Background(), testEvent(order.EventOrderPlaced, "customer-1"))

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, order.EventOrderPlaced, received[0].Name)
}

func TestEventBus_PublishRoutesToEventNameSubscribers(t *testing.T) {
	bus := inmemory.NewEventBus()
	delivered := 0
	bus.Subscribe(order.EventOrderAccepted, func(order.Event) { delivered++ })

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, testEvent(order.EventOrderAccepted, "store-1")))
	require.NoError(t, bus.Publish(ctx, testEvent(order.EventOrderPlaced, "store-1")))

	assert.Equal(t, 1, delivered)
}

func TestEventBus_WildcardReceivesEverythingExactlyOnce(t *testing.T) {
	bus := inmemory.NewEventBus()
	var names []string
	bus.Subscribe(ports.TopicAllEvents, func(e order.Event) {
		names = append(names, e.Name)
	})

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, testEvent(order.EventOrderPlaced, "customer-1")))
	require.NoError(t, bus.Publish(ctx, testEvent(order.EventOrderAccepted, "store-1")))

	assert.Equal(t, []string{order.EventOrderPlaced, order.EventOrderAccepted}, names)
}

func TestEventBus_PublishWithoutSubscribersIsDropped(t *testing.T) {
	bus := inmemory.NewEventBus()

	err := bus.Publish(context.Background(), testEvent(order.EventOrderPlaced, "nobody"))

	require.NoError(t, err)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := inmemory.NewEventBus()
	delivered := 0
	unsubscribe := bus.Subscribe("customer-1", func(order.Event) { delivered++ })

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, testEvent(order.EventOrderPlaced, "customer-1")))
	unsubscribe()
	unsubscribe()
	require.NoError(t, bus.Publish(ctx, testEvent(order.EventOrderAccepted, "customer-1")))

	assert.Equal(t, 1, delivered)
}

func TestInboxStore(t *testing.T) {
	ctx := context.Background()

	t.Run("notify appends newest first", func(t *testing.T) {
		store := inmemory.NewInboxStore(10)

		require.NoError(t, store.Notify(ctx, "customer-1", order.EventOrderPlaced, "Order Placed", "first"))
		require.NoError(t, store.Notify(ctx, "customer-1", order.EventOrderAccepted, "Order Accepted", "second"))

		inbox, err := store.Inbox(ctx, "customer-1")
		require.NoError(t, err)
		require.Len(t, inbox, 2)
		assert.Equal(t, "Order Accepted", inbox[0].Title())
		assert.Equal(t, "Order Placed", inbox[1].Title())
	})

	t.Run("inboxes are per actor", func(t *testing.T) {
		store := inmemory.NewInboxStore(10)
		require.NoError(t, store.Notify(ctx, "customer-1", order.EventOrderPlaced, "Order Placed", ""))

		inbox, err := store.Inbox(ctx, "rider-1")
		require.NoError(t, err)
		assert.Empty(t, inbox)
	})

	t.Run("capacity bounds each inbox", func(t *testing.T) {
		store := inmemory.NewInboxStore(2)
		require.NoError(t, store.Notify(ctx, "customer-1", order.EventOrderPlaced, "first", ""))
		require.NoError(t, store.Notify(ctx, "customer-1", order.EventOrderAccepted, "second", ""))
		require.NoError(t, store.Notify(ctx, "customer-1", order.EventOrderPicked, "third", ""))

		inbox, err := store.Inbox(ctx, "customer-1")
		require.NoError(t, err)
		require.Len(t, inbox, 2)
		assert.Equal(t, "third", inbox[0].Title())
		assert.Equal(t, "second", inbox[1].Title())
	})
}
