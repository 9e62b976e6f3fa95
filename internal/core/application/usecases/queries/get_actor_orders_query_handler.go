package queries

import (
	"context"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// GetActorOrdersQueryHandler serves an actor's order list from the
// projection index. Each role reads its own view; the index keeps views in
// step with committed mutations, so no filtering happens here.
type GetActorOrdersQueryHandler struct {
	index ports.ProjectionIndex
}

// NewGetActorOrdersQueryHandler creates a handler over the projection index.
func NewGetActorOrdersQueryHandler(index ports.ProjectionIndex) GetActorOrdersQueryHandler {
	return GetActorOrdersQueryHandler{index: index}
}

// Handle returns the actor's orders in placement order.
func (h GetActorOrdersQueryHandler) Handle(
	ctx context.Context, query GetActorOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	switch query.Role() {
	case ActorCustomer:
		list, err := h.index.ByCustomer(ctx, query.ActorID())
		if err != nil {
			return nil, err
		}
		return toOrderSummaries(list), nil
	case ActorStore:
		list, err := h.index.ByStore(ctx, query.ActorID())
		if err != nil {
			return nil, err
		}
		return toOrderSummaries(list), nil
	case ActorPicker:
		return h.byWorker(ctx, services.RolePicker, query.ActorID())
	case ActorPacker:
		return h.byWorker(ctx, services.RolePacker, query.ActorID())
	case ActorRider:
		return h.byWorker(ctx, services.RoleRider, query.ActorID())
	default:
		return nil, errs.NewValueIsInvalidError("role")
	}
}

func (h GetActorOrdersQueryHandler) byWorker(
	ctx context.Context, role services.WorkerRole, workerID string,
) ([]OrderSummaryResponse, error) {
	list, err := h.index.ByWorker(ctx, role, workerID)
	if err != nil {
		return nil, err
	}
	return toOrderSummaries(list), nil
}
