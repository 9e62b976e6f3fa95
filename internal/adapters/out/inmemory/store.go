// Package inmemory provides the authoritative in-memory order store with
// its unit of work, the role projection index kept synchronous with every
// committed mutation, the event bus, and the notification inbox store.
package inmemory

import (
	"context"
	"sync"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// Store holds the authoritative order set and the derived role projections.
// A global write lock serializes commands; commands against different orders
// still observe a consistent linearizable history, and reads return deep
// copies so callers can never mutate stored state.
//
// Store implements ports.ProjectionIndex. Writes go through the unit of
// work, which commits the mutation and the projection updates atomically
// under the same lock.
type Store struct {
	mu sync.RWMutex

	orders    map[string]*order.Order
	insertion []string

	global    []*order.Order
	customers map[string][]*order.Order
	stores    map[string][]*order.Order
	pickers   map[string][]*order.Order
	packers   map[string][]*order.Order
	riders    map[string][]*order.Order
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		orders:    make(map[string]*order.Order),
		customers: make(map[string][]*order.Order),
		stores:    make(map[string][]*order.Order),
		pickers:   make(map[string][]*order.Order),
		packers:   make(map[string][]*order.Order),
		riders:    make(map[string][]*order.Order),
	}
}

// ByCustomer returns copies of the orders in the customer's view.
func (s *Store) ByCustomer(_ context.Context, customerID string) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.customers[customerID]), nil
}

// ByStore returns copies of the orders in the store's view.
func (s *Store) ByStore(_ context.Context, storeID string) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.stores[storeID]), nil
}

// ByWorker returns copies of the orders in the worker's role view.
func (s *Store) ByWorker(_ context.Context, role services.WorkerRole, workerID string) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch role {
	case services.RolePicker:
		return cloneAll(s.pickers[workerID]), nil
	case services.RolePacker:
		return cloneAll(s.packers[workerID]), nil
	case services.RoleRider:
		return cloneAll(s.riders[workerID]), nil
	default:
		return nil, nil
	}
}

// All returns copies of every order in the global view.
func (s *Store) All(_ context.Context) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.global), nil
}

// upsertProjections re-derives the order's membership in every view it
// belongs to, replacing the stale copy in place so insertion order is
// preserved. Caller must hold the write lock.
func (s *Store) upsertProjections(o *order.Order) {
	upsertView(&s.global, o)
	upsertKeyedView(s.customers, o.CustomerID(), o)
	upsertKeyedView(s.stores, o.StoreID(), o)
	if pickerID := o.PickerID(); pickerID != nil {
		upsertKeyedView(s.pickers, *pickerID, o)
	}
	if packerID := o.PackerID(); packerID != nil {
		upsertKeyedView(s.packers, *packerID, o)
	}
	if riderID := o.RiderID(); riderID != nil {
		upsertKeyedView(s.riders, *riderID, o)
	}
}

func upsertKeyedView(views map[string][]*order.Order, key string, o *order.Order) {
	view := views[key]
	upsertView(&view, o)
	views[key] = view
}

func upsertView(view *[]*order.Order, o *order.Order) {
	for i, existing := range *view {
		if existing.IsEqual(o) {
			(*view)[i] = o.Clone()
			return
		}
	}
	*view = append(*view, o.Clone())
}

func cloneAll(orders []*order.Order) []*order.Order {
	out := make([]*order.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
