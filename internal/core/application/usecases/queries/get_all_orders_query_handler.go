package queries

import (
	"context"

	"orderflow/internal/core/ports"
)

// GetAllOrdersQueryHandler serves the global order list from the projection
// index.
type GetAllOrdersQueryHandler struct {
	index ports.ProjectionIndex
}

// NewGetAllOrdersQueryHandler creates a handler over the projection index.
func NewGetAllOrdersQueryHandler(index ports.ProjectionIndex) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{index: index}
}

// Handle returns every order in placement order.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context, query GetAllOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.index.All(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderSummaries(orders), nil
}
