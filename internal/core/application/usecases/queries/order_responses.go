package queries

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderSummaryResponse carries the fields a list view needs. Worker IDs are
// nil until the corresponding assignment happened.
type OrderSummaryResponse struct {
	ID          kernel.UUID
	CustomerID  string
	StoreID     string
	Category    order.Category
	Status      order.Status
	TotalAmount float64
	DeliveryFee float64
	PickerID    *string
	PackerID    *string
	RiderID     *string
	CreatedAt   time.Time
}

// ItemResponse describes one order line with its pick/pack progress.
type ItemResponse struct {
	ID               kernel.UUID
	Name             string
	Quantity         int
	Unit             string
	Barcode          string
	Status           order.ItemStatus
	OutOfStockReason string
	PackageType      string
	ScannedAt        *time.Time
}

// TimelineEntryResponse is one append-only status history record.
type TimelineEntryResponse struct {
	Status    order.Status
	Message   string
	Timestamp time.Time
}

func toOrderSummary(o *order.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:          o.ID(),
		CustomerID:  o.CustomerID(),
		StoreID:     o.StoreID(),
		Category:    o.Category(),
		Status:      o.Status(),
		TotalAmount: o.TotalAmount(),
		DeliveryFee: o.DeliveryFee(),
		PickerID:    o.PickerID(),
		PackerID:    o.PackerID(),
		RiderID:     o.RiderID(),
		CreatedAt:   o.CreatedAt(),
	}
}

func toOrderSummaries(orders []*order.Order) []OrderSummaryResponse {
	summaries := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, toOrderSummary(o))
	}
	return summaries
}

func toItemResponses(items []*order.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ItemResponse{
			ID:               item.ID(),
			Name:             item.Name(),
			Quantity:         item.Quantity(),
			Unit:             item.Unit(),
			Barcode:          item.Barcode(),
			Status:           item.Status(),
			OutOfStockReason: item.OutOfStockReason(),
			PackageType:      item.PackageType(),
			ScannedAt:        item.ScannedAt(),
		})
	}
	return responses
}

func toTimelineResponses(timeline []order.TimelineEntry) []TimelineEntryResponse {
	responses := make([]TimelineEntryResponse, 0, len(timeline))
	for _, entry := range timeline {
		responses = append(responses, TimelineEntryResponse{
			Status:    entry.Status,
			Message:   entry.Message,
			Timestamp: entry.Timestamp,
		})
	}
	return responses
}
