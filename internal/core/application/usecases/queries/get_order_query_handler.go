package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// GetOrderQueryHandler serves a single order readout from the repository,
// attaching stage progress for orders mid-picking or mid-packing.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler over the order repository.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns the order's full state. Unknown IDs report
// errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context, query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		Order:           toOrderSummary(aggregate),
		DeliveryAddress: aggregate.DeliveryAddress(),
		PaymentMethod:   aggregate.PaymentMethod(),
		Instructions:    aggregate.SpecialInstructions(),
		Items:           toItemResponses(aggregate.Items()),
		Timeline:        toTimelineResponses(aggregate.Timeline()),
	}

	now := time.Now()
	switch aggregate.Status() {
	case order.AssignedToPicker, order.Picked:
		progress := aggregate.PickingProgress(now)
		response.PickingProgress = &progress
	case order.AssignedToPacker, order.Packed:
		progress := aggregate.PackingProgress(now)
		response.PackingProgress = &progress
	}

	return response, nil
}
