// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows. Items and
// the status timeline are embedded documents stored as JSONB.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored in wire form so the role views can filter on it directly.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID          string    `gorm:"index"`
	StoreID             string    `gorm:"index"`
	Category            string
	Status              string `gorm:"index"`
	TotalAmount         float64
	DeliveryFee         float64
	DeliveryAddress     string
	PaymentMethod       string
	SpecialInstructions string

	PickerID *string `gorm:"index"`
	PackerID *string `gorm:"index"`
	RiderID  *string `gorm:"index"`

	Items    ItemsColumn    `gorm:"type:jsonb"`
	Timeline TimelineColumn `gorm:"type:jsonb"`

	CreatedAt        time.Time
	PickingStartedAt *time.Time
	PackingStartedAt *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the items JSONB document.
type ItemDTO struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Quantity         int        `json:"quantity"`
	Unit             string     `json:"unit"`
	Barcode          string     `json:"barcode"`
	Status           string     `json:"status"`
	OutOfStockReason string     `json:"out_of_stock_reason,omitempty"`
	PackageType      string     `json:"package_type,omitempty"`
	ScannedAt        *time.Time `json:"scanned_at,omitempty"`
}

// TimelineEntryDTO is one status history record inside the timeline JSONB
// document.
type TimelineEntryDTO struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemsColumn marshals the item list to and from a JSONB column.
type ItemsColumn []ItemDTO

func (c ItemsColumn) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ItemsColumn) Scan(value any) error {
	return scanJSON(value, c)
}

// TimelineColumn marshals the timeline to and from a JSONB column.
type TimelineColumn []TimelineEntryDTO

func (c TimelineColumn) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *TimelineColumn) Scan(value any) error {
	return scanJSON(value, c)
}

func scanJSON(value, target any) error {
	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, target)
	case string:
		return json.Unmarshal([]byte(raw), target)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make(ItemsColumn, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:               item.ID().Bytes(),
			Name:             item.Name(),
			Quantity:         item.Quantity(),
			Unit:             item.Unit(),
			Barcode:          item.Barcode(),
			Status:           item.Status().String(),
			OutOfStockReason: item.OutOfStockReason(),
			PackageType:      item.PackageType(),
			ScannedAt:        item.ScannedAt(),
		})
	}

	timeline := make(TimelineColumn, 0, len(aggregate.Timeline()))
	for _, entry := range aggregate.Timeline() {
		timeline = append(timeline, TimelineEntryDTO{
			Status:    entry.Status.String(),
			Message:   entry.Message,
			Timestamp: entry.Timestamp,
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		CustomerID:          aggregate.CustomerID(),
		StoreID:             aggregate.StoreID(),
		Category:            aggregate.Category().String(),
		Status:              aggregate.Status().String(),
		TotalAmount:         aggregate.TotalAmount(),
		DeliveryFee:         aggregate.DeliveryFee(),
		DeliveryAddress:     aggregate.DeliveryAddress(),
		PaymentMethod:       aggregate.PaymentMethod(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		PickerID:            aggregate.PickerID(),
		PackerID:            aggregate.PackerID(),
		RiderID:             aggregate.RiderID(),
		Items:               items,
		Timeline:            timeline,
		CreatedAt:           aggregate.CreatedAt(),
		PickingStartedAt:    aggregate.PickingStartedAt(),
		PackingStartedAt:    aggregate.PackingStartedAt(),
	}
}

// toDomain converts a database row to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.RestoreItem(
			itemID, itemDTO.Name, itemDTO.Quantity, itemDTO.Unit, itemDTO.Barcode,
			order.ItemStatus(itemDTO.Status), itemDTO.OutOfStockReason,
			itemDTO.PackageType, itemDTO.ScannedAt)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	timeline := make([]order.TimelineEntry, 0, len(dto.Timeline))
	for _, entryDTO := range dto.Timeline {
		entryStatus, entryErr := order.StatusFromString(entryDTO.Status)
		if entryErr != nil {
			return nil, entryErr
		}
		timeline = append(timeline, order.TimelineEntry{
			Status:    entryStatus,
			Message:   entryDTO.Message,
			Timestamp: entryDTO.Timestamp,
		})
	}

	return order.RestoreOrder(
		id,
		dto.CustomerID, dto.StoreID,
		order.Category(dto.Category),
		items,
		status,
		dto.TotalAmount, dto.DeliveryFee,
		dto.DeliveryAddress, dto.PaymentMethod, dto.SpecialInstructions,
		dto.PickerID, dto.PackerID, dto.RiderID,
		timeline,
		dto.CreatedAt,
		dto.PickingStartedAt, dto.PackingStartedAt,
	)
}
