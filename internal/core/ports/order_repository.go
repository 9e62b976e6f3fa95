package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must provide the same atomicity as the unit of work that
// created them: a rejected command leaves stored state untouched.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, oldest placement first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves the orders currently in the given status,
	// oldest placement first. Used by the assignment sweep to find orders
	// stalled waiting for a worker.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
