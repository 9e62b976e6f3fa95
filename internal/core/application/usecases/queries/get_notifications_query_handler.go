package queries

import (
	"context"

	"orderflow/internal/core/ports"
)

// GetNotificationsQueryHandler serves an actor's inbox through the notifier
// port.
type GetNotificationsQueryHandler struct {
	notifier ports.Notifier
}

// NewGetNotificationsQueryHandler creates a handler over the notifier.
func NewGetNotificationsQueryHandler(notifier ports.Notifier) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{notifier: notifier}
}

// Handle returns the actor's retained notifications, newest first. An actor
// with no notifications gets an empty list, not an error.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context, query GetNotificationsQuery,
) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.notifier.Inbox(ctx, query.ActorID())
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NotificationResponse{
			ID:        entry.ID(),
			Type:      entry.Type(),
			Title:     entry.Title(),
			Message:   entry.Message(),
			CreatedAt: entry.Timestamp(),
		})
	}
	return responses, nil
}
