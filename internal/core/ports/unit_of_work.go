package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command, isolating
// concurrent operations from one another.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary for a single command. A commit
// applies the order mutation and the matching projection updates atomically;
// anything not committed is discarded on rollback. Client code must
// explicitly manage the lifecycle: Begin, then either Commit or Rollback.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit atomically applies all staged changes, including the
	// projection updates derived from them.
	Commit(ctx context.Context) error

	// Rollback discards staged changes. Safe to call after Commit, where it
	// is a no-op, which permits the deferred-rollback idiom.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to this transaction.
	OrderRepository() OrderRepository
}
