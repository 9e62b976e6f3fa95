package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// WorkerAssigner applies the dispatch policy: it selects a worker for a role
// and runs the matching assignment transition in its own transaction. Both
// the synchronous auto-assignment chains and the periodic sweep go through
// it.
type WorkerAssigner struct {
	uowFactory ports.UnitOfWorkFactory
	strategy   services.AssignmentStrategy
	publisher  *EventPublisher
	logger     *slog.Logger
}

// NewWorkerAssigner creates an assigner using the given dispatch strategy.
func NewWorkerAssigner(
	uowFactory ports.UnitOfWorkFactory,
	strategy services.AssignmentStrategy,
	publisher *EventPublisher,
	logger *slog.Logger,
) *WorkerAssigner {
	return &WorkerAssigner{
		uowFactory: uowFactory,
		strategy:   strategy,
		publisher:  publisher,
		logger:     logger.With("component", "worker_assigner"),
	}
}

// TryAssign assigns a worker of the given role to the order. When the
// strategy has no worker available the order is left untouched and nil is
// returned; a later attempt, typically the assignment sweep, retries.
func (a *WorkerAssigner) TryAssign(ctx context.Context, orderID kernel.UUID, role services.WorkerRole) error {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	workerID, err := a.strategy.SelectWorker(role, aggregate)
	if err != nil {
		if errors.Is(err, services.ErrNoWorkersAvailable) {
			a.logger.Info("no worker available, leaving order for retry",
				"orderId", orderID.String(),
				"role", string(role))
			return nil
		}
		return err
	}

	now := time.Now()
	switch role {
	case services.RolePicker:
		err = aggregate.AssignPicker(workerID, now)
	case services.RolePacker:
		err = aggregate.AssignPacker(workerID, now)
	case services.RoleRider:
		err = aggregate.AssignRider(workerID, now)
	}
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	a.publisher.PublishAll(ctx, aggregate.TakeEvents())
	return nil
}
