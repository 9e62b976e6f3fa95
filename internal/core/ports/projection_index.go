package ports

import (
	"context"

	"orderflow/internal/core/domain/services"

	"orderflow/internal/core/domain/model/order"
)

// ProjectionIndex serves the role-keyed read views over the authoritative
// order set: one view per actor role plus a global view. Views are derived
// copies, updated synchronously with every committed mutation, never
// mutated independently.
//
// Each returned order is a snapshot field-equal to the authoritative order
// at the time of its last successful mutation, in insertion order.
type ProjectionIndex interface {
	// ByCustomer returns the orders placed by the customer.
	ByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)

	// ByStore returns the orders fulfilled by the store.
	ByStore(ctx context.Context, storeID string) ([]*order.Order, error)

	// ByWorker returns the orders assigned to the worker in the given role.
	ByWorker(ctx context.Context, role services.WorkerRole, workerID string) ([]*order.Order, error)

	// All returns the global view of every order.
	All(ctx context.Context) ([]*order.Order, error)
}
