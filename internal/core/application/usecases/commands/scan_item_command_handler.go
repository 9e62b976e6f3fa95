package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// ScanItemResult reports the outcome of a scan. A mismatched barcode is a
// normal, retryable outcome rather than an error: Matched is false and the
// item stays pending.
type ScanItemResult struct {
	Matched  bool
	Progress order.Progress
}

// ScanItemCommandHandler verifies a scanned barcode and marks the item
// picked on a match.
type ScanItemCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  *EventPublisher
}

// NewScanItemCommandHandler creates a handler for item scans.
func NewScanItemCommandHandler(
	uowFactory ports.UnitOfWorkFactory, publisher *EventPublisher,
) ScanItemCommandHandler {
	return ScanItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the scan and returns the updated picking progress.
func (h *ScanItemCommandHandler) Handle(ctx context.Context, cmd ScanItemCommand) (ScanItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return ScanItemResult{}, err
	}

	var result ScanItemResult
	now := time.Now()
	err := mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(aggregate *order.Order) error {
		matched, err := aggregate.ScanItem(cmd.ItemID(), cmd.ScannedCode(), now)
		if err != nil {
			return err
		}
		result = ScanItemResult{
			Matched:  matched,
			Progress: aggregate.PickingProgress(now),
		}
		return nil
	})
	if err != nil {
		return ScanItemResult{}, err
	}

	return result, nil
}
