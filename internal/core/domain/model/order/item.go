package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"orderflow/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ItemStatus represents the pick/pack state of a single order item.
//
// Transitions: pending -> picked -> packed, or pending -> out_of_stock.
// Out-of-stock items are excluded from the packing item set.
type ItemStatus string

const (
	ItemPending    ItemStatus = "pending"
	ItemPicked     ItemStatus = "picked"
	ItemOutOfStock ItemStatus = "out_of_stock"
	ItemPacked     ItemStatus = "packed"
)

// Validate checks that the ItemStatus holds one of the defined values.
func (s ItemStatus) Validate() error {
	switch s {
	case ItemPending, ItemPicked, ItemOutOfStock, ItemPacked:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("itemStatus",
			fmt.Errorf("%q is not a valid item status", string(s)))
	}
}

func (s ItemStatus) String() string {
	return string(s)
}

// Item is an entity within the Order aggregate tracking one line of the
// pick/pack sub-workflow. Items are mutated only through the aggregate's
// ScanItem, MarkOutOfStock, and MarkPacked operations.
type Item struct {
	id       kernel.UUID
	name     string
	quantity int
	unit     string
	barcode  string

	status           ItemStatus
	outOfStockReason string
	packageType      string
	scannedAt        *time.Time

	isConstructed bool
}

// NewItem creates a validated Item in the pending state.
func NewItem(id kernel.UUID, name string, quantity int, unit, barcode string) (*Item, error) {
	item := &Item{
		status:        ItemPending,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnit(unit),
		item.setBarcode(barcode),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rehydrates an Item from persistence without re-running the
// construction validations beyond the constructor guard.
func RestoreItem(
	id kernel.UUID, name string, quantity int, unit, barcode string,
	status ItemStatus, outOfStockReason, packageType string, scannedAt *time.Time,
) (*Item, error) {
	item, err := NewItem(id, name, quantity, unit, barcode)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	item.status = status
	item.outOfStockReason = outOfStockReason
	item.packageType = packageType
	if scannedAt != nil {
		t := *scannedAt
		item.scannedAt = &t
	}
	return item, nil
}

// Validate ensures the Item was created via NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// Name returns the item's display name.
func (i *Item) Name() string { return i.name }

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int { return i.quantity }

// Unit returns the quantity unit (e.g. "pcs", "kg").
func (i *Item) Unit() string { return i.unit }

// Barcode returns the expected barcode for scan verification.
func (i *Item) Barcode() string { return i.barcode }

// Status returns the item's pick/pack state.
func (i *Item) Status() ItemStatus { return i.status }

// OutOfStockReason returns the recorded reason, empty unless the item is
// out_of_stock.
func (i *Item) OutOfStockReason() string { return i.outOfStockReason }

// PackageType returns the recorded package type, empty unless the item is
// packed.
func (i *Item) PackageType() string { return i.packageType }

// ScannedAt returns when the item was successfully scanned, nil if it never
// was.
func (i *Item) ScannedAt() *time.Time {
	if i.scannedAt == nil {
		return nil
	}
	t := *i.scannedAt
	return &t
}

// MatchesBarcode reports whether a scanned code equals the expected barcode.
func (i *Item) MatchesBarcode(code string) bool {
	return i.barcode == code
}

// markPicked transitions the item to picked. Valid only from pending.
func (i *Item) markPicked(now time.Time) error {
	if i.status != ItemPending {
		return errs.NewInvalidTransitionError("scan item", i.status.String())
	}
	i.status = ItemPicked
	t := now
	i.scannedAt = &t
	return nil
}

// markOutOfStock transitions the item to out_of_stock. Valid only from
// pending.
func (i *Item) markOutOfStock(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("outOfStockReason")
	}
	if i.status != ItemPending {
		return errs.NewInvalidTransitionError("mark out of stock", i.status.String())
	}
	i.status = ItemOutOfStock
	i.outOfStockReason = reason
	return nil
}

// markPacked transitions the item to packed. Valid only from picked, which
// excludes out-of-stock items from packing entirely.
func (i *Item) markPacked(packageType string) error {
	if packageType == "" {
		return errs.NewValueIsRequiredError("packageType")
	}
	if i.status != ItemPicked {
		return errs.NewInvalidTransitionError("mark packed", i.status.String())
	}
	i.status = ItemPacked
	i.packageType = packageType
	return nil
}

// clone returns a deep copy of the item.
func (i *Item) clone() *Item {
	c := *i
	if i.scannedAt != nil {
		t := *i.scannedAt
		c.scannedAt = &t
	}
	return &c
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	i.unit = unit
	return nil
}

func (i *Item) setBarcode(barcode string) error {
	if barcode == "" {
		return errs.NewValueIsRequiredError("barcode")
	}
	i.barcode = barcode
	return nil
}
