package inmemory

import (
	"context"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
)

// InboxStore keeps one bounded notification inbox per actor. It implements
// ports.Notifier and is safe for concurrent use.
type InboxStore struct {
	mu       sync.Mutex
	capacity int
	inboxes  map[string]*notification.Inbox
}

// NewInboxStore creates an InboxStore with the given per-actor capacity.
// Non-positive capacities fall back to notification.DefaultInboxCapacity.
func NewInboxStore(capacity int) *InboxStore {
	return &InboxStore{
		capacity: capacity,
		inboxes:  make(map[string]*notification.Inbox),
	}
}

// Notify appends a notification to the actor's inbox, evicting the oldest
// entry beyond capacity.
func (s *InboxStore) Notify(_ context.Context, targetActorID, notifType, title, message string) error {
	n, err := notification.NewNotification(
		kernel.NewUUID(), notifType, title, message, targetActorID, time.Now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inbox, ok := s.inboxes[targetActorID]
	if !ok {
		inbox = notification.NewInbox(s.capacity)
		s.inboxes[targetActorID] = inbox
	}
	return inbox.Add(n)
}

// Inbox returns the actor's retained notifications, newest first. An actor
// with no notifications gets an empty list.
func (s *InboxStore) Inbox(_ context.Context, actorID string) ([]*notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inbox, ok := s.inboxes[actorID]
	if !ok {
		return nil, nil
	}
	return inbox.List(), nil
}
