package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves an actor's inbox, newest first.
type GetNotificationsQuery struct {
	actorID string

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a validated query for an actor's inbox.
func NewGetNotificationsQuery(actorID string) (GetNotificationsQuery, error) {
	if actorID == "" {
		return GetNotificationsQuery{}, errs.NewValueIsRequiredError("actorId")
	}
	return GetNotificationsQuery{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// ActorID returns the inbox owner.
func (q GetNotificationsQuery) ActorID() string { return q.actorID }

// NotificationResponse is one retained notification.
type NotificationResponse struct {
	ID        kernel.UUID
	Type      string
	Title     string
	Message   string
	CreatedAt time.Time
}
