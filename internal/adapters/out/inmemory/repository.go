package inmemory

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"orderflow/internal/pkg/errs"
)

// Repository implements ports.OrderRepository over a Store. A repository
// obtained from a unit of work operates inside that transaction's staging
// area; a standalone repository created with NewRepository serves
// lock-protected reads and single-operation writes.
type Repository struct {
	store *Store
	uow   *UnitOfWork
}

// NewRepository creates a standalone repository for read paths that need
// the authoritative order rather than a projection.
func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

// Add stages a new order. Fails if an order with the same ID already exists.
func (r *Repository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if r.uow == nil {
		return r.inOwnTransaction(ctx, func(repo *Repository) error { return repo.add(aggregate) })
	}
	return r.add(aggregate)
}

// Update stages changes to an existing order. Fails with a not-found error
// if the order is unknown.
func (r *Repository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if r.uow == nil {
		return r.inOwnTransaction(ctx, func(repo *Repository) error { return repo.update(aggregate) })
	}
	return r.update(aggregate)
}

// Get returns a deep copy of the order, preferring the staged version when
// called inside a transaction.
func (r *Repository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if r.uow == nil {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	if o, ok := r.lookup(id.String()); ok {
		return o.Clone(), nil
	}
	return nil, errs.NewObjectNotFoundError("orderId", id.String())
}

// GetAll returns deep copies of every order, oldest placement first.
func (r *Repository) GetAll(_ context.Context) ([]*order.Order, error) {
	if r.uow == nil {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	var out []*order.Order
	for _, id := range r.allIDs() {
		if o, ok := r.lookup(id); ok {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

// GetAllInStatus returns deep copies of the orders in the given status,
// oldest placement first.
func (r *Repository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if r.uow == nil {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	var out []*order.Order
	for _, id := range r.allIDs() {
		if o, ok := r.lookup(id); ok && o.Status() == status {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (r *Repository) add(aggregate *order.Order) error {
	id := aggregate.ID().String()
	if _, exists := r.lookup(id); exists {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("order %s already exists", id))
	}
	r.stage(id, aggregate, true)
	return nil
}

func (r *Repository) update(aggregate *order.Order) error {
	id := aggregate.ID().String()
	if _, exists := r.lookup(id); !exists {
		return errs.NewObjectNotFoundError("orderId", id)
	}
	r.stage(id, aggregate, false)
	return nil
}

// stage records a deep copy in the transaction. Standalone writes never
// reach here; they are wrapped in an implicit single-operation transaction.
func (r *Repository) stage(id string, aggregate *order.Order, isNew bool) {
	if isNew && !r.uow.stagedKnown[id] {
		r.uow.stagedAdds = append(r.uow.stagedAdds, id)
	}
	r.uow.staged[id] = aggregate.Clone()
	r.uow.stagedKnown[id] = true
}

func (r *Repository) lookup(id string) (*order.Order, bool) {
	if r.uow != nil {
		if staged, ok := r.uow.staged[id]; ok {
			return staged, true
		}
	}
	o, ok := r.store.orders[id]
	return o, ok
}

func (r *Repository) allIDs() []string {
	ids := append([]string(nil), r.store.insertion...)
	if r.uow != nil {
		ids = append(ids, r.uow.stagedAdds...)
	}
	return ids
}

// inOwnTransaction wraps a standalone write in an implicit single-operation
// transaction so projections stay synchronous with the mutation.
func (r *Repository) inOwnTransaction(ctx context.Context, op func(repo *Repository) error) error {
	uow := &UnitOfWork{store: r.store}
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := op(&Repository{store: r.store, uow: uow}); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
