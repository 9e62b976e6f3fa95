package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// mutateOrder runs one order transition inside its own unit of work: load,
// mutate, update, commit, then publish the recorded events. A failing
// mutation rolls back and leaves the order untouched.
func mutateOrder(
	ctx context.Context,
	uowFactory ports.UnitOfWorkFactory,
	publisher *EventPublisher,
	orderID kernel.UUID,
	mutate func(aggregate *order.Order) error,
) error {
	uow := uowFactory.Create()
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

	if err = mutate(aggregate); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publisher.PublishAll(ctx, aggregate.TakeEvents())
	return nil
}
