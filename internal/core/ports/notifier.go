package ports

import (
	"context"

	"orderflow/internal/core/domain/model/notification"
)

// Notifier appends user-facing notifications to per-actor bounded inboxes
// and serves inbox reads. Notification failures are best effort and never
// roll back the state mutation that triggered them.
type Notifier interface {
	// Notify appends a notification of the given type to the actor's inbox,
	// evicting the oldest entry beyond the inbox capacity.
	Notify(ctx context.Context, targetActorID, notifType, title, message string) error

	// Inbox returns the actor's retained notifications, newest first.
	Inbox(ctx context.Context, actorID string) ([]*notification.Notification, error)
}
