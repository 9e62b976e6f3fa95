package notification_test

import (
	"fmt"
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	now := time.Now()

	t.Run("should create valid notification", func(t *testing.T) {
		id := kernel.NewUUID()

		n, err := notification.NewNotification(id, "order.accepted",
			"Order Accepted", "Your order is being prepared", "customer-1", now)

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.True(t, n.ID().IsEqual(id))
		assert.Equal(t, "order.accepted", n.Type())
		assert.Equal(t, "Order Accepted", n.Title())
		assert.Equal(t, "Your order is being prepared", n.Message())
		assert.Equal(t, "customer-1", n.TargetActorID())
		assert.Equal(t, now, n.Timestamp())
	})

	t.Run("should allow empty message", func(t *testing.T) {
		_, err := notification.NewNotification(kernel.NewUUID(), "order.placed",
			"Order Placed", "", "customer-1", now)

		require.NoError(t, err)
	})

	t.Run("should fail with missing fields", func(t *testing.T) {
		_, err := notification.NewNotification(kernel.NewUUID(), "", "", "", "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "type")
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "targetActorId")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var n notification.Notification

		require.ErrorIs(t, n.Validate(), notification.ErrNotificationIsNotConstructed)
	})
}

func TestInbox(t *testing.T) {
	now := time.Now()

	add := func(t *testing.T, inbox *notification.Inbox, title string) {
		t.Helper()
		n, err := notification.NewNotification(kernel.NewUUID(), "order.placed",
			title, "", "customer-1", now)
		require.NoError(t, err)
		require.NoError(t, inbox.Add(n))
	}

	t.Run("newest entries come first", func(t *testing.T) {
		inbox := notification.NewInbox(10)
		add(t, inbox, "first")
		add(t, inbox, "second")
		add(t, inbox, "third")

		entries := inbox.List()

		require.Len(t, entries, 3)
		assert.Equal(t, "third", entries[0].Title())
		assert.Equal(t, "first", entries[2].Title())
	})

	t.Run("oldest entries evicted beyond capacity", func(t *testing.T) {
		inbox := notification.NewInbox(3)
		for i := 1; i <= 5; i++ {
			add(t, inbox, fmt.Sprintf("entry-%d", i))
		}

		entries := inbox.List()

		require.Len(t, entries, 3)
		assert.Equal(t, "entry-5", entries[0].Title())
		assert.Equal(t, "entry-3", entries[2].Title())
	})

	t.Run("non-positive capacity falls back to default", func(t *testing.T) {
		inbox := notification.NewInbox(0)
		for i := 0; i < notification.DefaultInboxCapacity+10; i++ {
			add(t, inbox, fmt.Sprintf("entry-%d", i))
		}

		assert.Equal(t, notification.DefaultInboxCapacity, inbox.Len())
	})

	t.Run("rejects unconstructed notifications", func(t *testing.T) {
		inbox := notification.NewInbox(10)

		err := inbox.Add(&notification.Notification{})

		require.ErrorIs(t, err, notification.ErrNotificationIsNotConstructed)
	})
}
