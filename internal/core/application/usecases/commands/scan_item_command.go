package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrScanItemCommandIsNotConstructed = errors.New(
	"ScanItemCommand must be created via NewScanItemCommand constructor",
)

// ScanItemCommand represents a picker scanning an item's barcode.
type ScanItemCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	itemID      kernel.UUID
	scannedCode string

	guard guard.ConstructorGuard
}

// NewScanItemCommand creates a validated command to scan an item.
func NewScanItemCommand(orderID, itemID kernel.UUID, scannedCode string) (ScanItemCommand, error) {
	cmd := ScanItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setScannedCode(scannedCode),
	); err != nil {
		return ScanItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScanItemCommand) Validate() error {
	return c.guard.Validate(ErrScanItemCommandIsNotConstructed)
}

// OrderID returns the order being picked.
func (c ScanItemCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the item being scanned.
func (c ScanItemCommand) ItemID() kernel.UUID { return c.itemID }

// ScannedCode returns the barcode read by the scanner.
func (c ScanItemCommand) ScannedCode() string { return c.scannedCode }

func (c *ScanItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ScanItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *ScanItemCommand) setScannedCode(scannedCode string) error {
	if scannedCode == "" {
		return errs.NewValueIsRequiredError("scannedCode")
	}
	c.scannedCode = scannedCode
	return nil
}
