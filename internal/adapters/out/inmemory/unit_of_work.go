package inmemory

import (
	"context"
	"errors"

	"orderflow/internal/core/ports"

	"orderflow/internal/core/domain/model/order"
)

// ErrNoActiveTransaction is returned when Commit is called without Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates per-command units of work over a Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a fresh UnitOfWork. Each command gets its own instance.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages order changes under the store's global write lock and
// applies them, together with the matching projection updates, in one atomic
// commit. A rolled-back unit of work leaves the store untouched.
type UnitOfWork struct {
	store  *Store
	active bool

	staged      map[string]*order.Order
	stagedAdds  []string
	stagedKnown map[string]bool
}

// Begin acquires the store's write lock and opens the staging area.
func (u *UnitOfWork) Begin(_ context.Context) error {
	u.store.mu.Lock()
	u.active = true
	u.staged = make(map[string]*order.Order)
	u.stagedKnown = make(map[string]bool)
	u.stagedAdds = nil
	return nil
}

// Commit applies every staged order to the authoritative set, upserts the
// projections it belongs to, and releases the lock.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}

	for _, id := range u.stagedAdds {
		u.store.insertion = append(u.store.insertion, id)
	}
	for id, staged := range u.staged {
		u.store.orders[id] = staged
	}
	// Upsert in insertion order so new views stay ordered by placement.
	for _, id := range u.store.insertion {
		if staged, ok := u.staged[id]; ok {
			u.store.upsertProjections(staged)
		}
	}

	u.discard()
	return nil
}

// Rollback discards staged changes and releases the lock. After a commit it
// is a no-op, permitting the deferred-rollback idiom.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return nil
	}
	u.discard()
	return nil
}

// OrderRepository returns a repository bound to this transaction.
func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &Repository{store: u.store, uow: u}
}

func (u *UnitOfWork) discard() {
	u.staged = nil
	u.stagedKnown = nil
	u.stagedAdds = nil
	u.active = false
	u.store.mu.Unlock()
}
