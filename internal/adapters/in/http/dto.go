package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
)

type placeOrderRequest struct {
	CustomerID          string             `json:"customer_id"`
	StoreID             string             `json:"store_id"`
	Category            string             `json:"category"`
	Items               []itemInputRequest `json:"items"`
	TotalAmount         float64            `json:"total_amount"`
	DeliveryFee         float64            `json:"delivery_fee"`
	DeliveryAddress     string             `json:"delivery_address"`
	PaymentMethod       string             `json:"payment_method"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
}

type itemInputRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Barcode  string `json:"barcode"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type workerRequest struct {
	WorkerID string `json:"worker_id"`
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

type packRequest struct {
	PackageType string `json:"package_type"`
}

type verifyRequest struct {
	Otp string `json:"otp"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderSummaryResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	StoreID     string    `json:"store_id"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	DeliveryFee float64   `json:"delivery_fee"`
	PickerID    *string   `json:"picker_id,omitempty"`
	PackerID    *string   `json:"packer_id,omitempty"`
	RiderID     *string   `json:"rider_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type itemResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Quantity         int        `json:"quantity"`
	Unit             string     `json:"unit"`
	Barcode          string     `json:"barcode"`
	Status           string     `json:"status"`
	OutOfStockReason string     `json:"out_of_stock_reason,omitempty"`
	PackageType      string     `json:"package_type,omitempty"`
	ScannedAt        *time.Time `json:"scanned_at,omitempty"`
}

type timelineEntryResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type progressResponse struct {
	Total              int      `json:"total"`
	Picked             int      `json:"picked"`
	OutOfStock         int      `json:"out_of_stock"`
	Packed             int      `json:"packed"`
	Remaining          int      `json:"remaining"`
	Percent            float64  `json:"percent"`
	ElapsedSeconds     float64  `json:"elapsed_seconds"`
	EstimatedRemaining *float64 `json:"estimated_remaining_seconds,omitempty"`
}

type orderDetailResponse struct {
	orderSummaryResponse
	DeliveryAddress     string                  `json:"delivery_address"`
	PaymentMethod       string                  `json:"payment_method"`
	SpecialInstructions string                  `json:"special_instructions,omitempty"`
	Items               []itemResponse          `json:"items"`
	Timeline            []timelineEntryResponse `json:"timeline"`
	PickingProgress     *progressResponse       `json:"picking_progress,omitempty"`
	PackingProgress     *progressResponse       `json:"packing_progress,omitempty"`
}

type scanResponse struct {
	Matched  bool             `json:"matched"`
	Progress progressResponse `json:"progress"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toOrderSummaryResponse(summary queries.OrderSummaryResponse) orderSummaryResponse {
	return orderSummaryResponse{
		ID:          summary.ID.String(),
		CustomerID:  summary.CustomerID,
		StoreID:     summary.StoreID,
		Category:    summary.Category.String(),
		Status:      summary.Status.String(),
		TotalAmount: summary.TotalAmount,
		DeliveryFee: summary.DeliveryFee,
		PickerID:    summary.PickerID,
		PackerID:    summary.PackerID,
		RiderID:     summary.RiderID,
		CreatedAt:   summary.CreatedAt,
	}
}

func toOrderSummaryResponses(summaries []queries.OrderSummaryResponse) []orderSummaryResponse {
	responses := make([]orderSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, toOrderSummaryResponse(summary))
	}
	return responses
}

func toOrderDetailResponse(detail queries.GetOrderQueryResponse) orderDetailResponse {
	items := make([]itemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, itemResponse{
			ID:               item.ID.String(),
			Name:             item.Name,
			Quantity:         item.Quantity,
			Unit:             item.Unit,
			Barcode:          item.Barcode,
			Status:           item.Status.String(),
			OutOfStockReason: item.OutOfStockReason,
			PackageType:      item.PackageType,
			ScannedAt:        item.ScannedAt,
		})
	}

	timeline := make([]timelineEntryResponse, 0, len(detail.Timeline))
	for _, entry := range detail.Timeline {
		timeline = append(timeline, timelineEntryResponse{
			Status:    entry.Status.String(),
			Message:   entry.Message,
			Timestamp: entry.Timestamp,
		})
	}

	response := orderDetailResponse{
		orderSummaryResponse: toOrderSummaryResponse(detail.Order),
		DeliveryAddress:      detail.DeliveryAddress,
		PaymentMethod:        detail.PaymentMethod,
		SpecialInstructions:  detail.Instructions,
		Items:                items,
		Timeline:             timeline,
	}
	if detail.PickingProgress != nil {
		progress := toProgressResponse(*detail.PickingProgress)
		response.PickingProgress = &progress
	}
	if detail.PackingProgress != nil {
		progress := toProgressResponse(*detail.PackingProgress)
		response.PackingProgress = &progress
	}
	return response
}

func toProgressResponse(progress order.Progress) progressResponse {
	response := progressResponse{
		Total:          progress.Total,
		Picked:         progress.Picked,
		OutOfStock:     progress.OutOfStock,
		Packed:         progress.Packed,
		Remaining:      progress.Remaining,
		Percent:        progress.Percent,
		ElapsedSeconds: progress.Elapsed.Seconds(),
	}
	if progress.EstimatedRemaining != nil {
		seconds := progress.EstimatedRemaining.Seconds()
		response.EstimatedRemaining = &seconds
	}
	return response
}
