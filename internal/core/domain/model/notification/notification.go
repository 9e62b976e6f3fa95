// Package notification provides the user-facing notification record and the
// bounded per-actor inbox that retains the most recent entries.
package notification

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"orderflow/internal/pkg/errs"
)

// DefaultInboxCapacity is the number of notifications retained per actor
// unless configured otherwise.
const DefaultInboxCapacity = 50

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is one entry in an actor's inbox. Type carries the event name
// that produced it.
type Notification struct {
	id            kernel.UUID
	notifType     string
	title         string
	message       string
	targetActorID string
	timestamp     time.Time

	isConstructed bool
}

// NewNotification creates a validated Notification.
func NewNotification(
	id kernel.UUID, notifType, title, message, targetActorID string, timestamp time.Time,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		requireField("type", notifType),
		requireField("title", title),
		requireField("targetActorId", targetActorID),
	); err != nil {
		return nil, err
	}

	return &Notification{
		id:            id,
		notifType:     notifType,
		title:         title,
		message:       message,
		targetActorID: targetActorID,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// Validate ensures the Notification was created via NewNotification.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// Type returns the event name that produced the notification.
func (n *Notification) Type() string { return n.notifType }

// Title returns the short display title.
func (n *Notification) Title() string { return n.title }

// Message returns the display body, possibly empty.
func (n *Notification) Message() string { return n.message }

// TargetActorID returns the identity whose inbox holds the notification.
func (n *Notification) TargetActorID() string { return n.targetActorID }

// Timestamp returns when the notification was produced.
func (n *Notification) Timestamp() time.Time { return n.timestamp }

// Inbox is a bounded, newest-first notification list. Adding beyond the
// capacity evicts the oldest entry. Inbox is not safe for concurrent use;
// callers synchronize access.
type Inbox struct {
	capacity int
	entries  []*Notification
}

// NewInbox creates an Inbox with the given capacity. Non-positive capacities
// fall back to DefaultInboxCapacity.
func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = DefaultInboxCapacity
	}
	return &Inbox{capacity: capacity}
}

// Add prepends the notification, evicting the oldest entry if the inbox is
// at capacity.
func (i *Inbox) Add(n *Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	i.entries = append([]*Notification{n}, i.entries...)
	if len(i.entries) > i.capacity {
		i.entries = i.entries[:i.capacity]
	}
	return nil
}

// List returns the retained notifications, newest first.
func (i *Inbox) List() []*Notification {
	return append([]*Notification(nil), i.entries...)
}

// Len returns the number of retained notifications.
func (i *Inbox) Len() int {
	return len(i.entries)
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
