package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// ItemInput describes one requested order line as received from the caller.
type ItemInput struct {
	Name     string
	Quantity int
	Unit     string
	Barcode  string
}

// PlaceOrderCommand represents a customer's request to place a new order.
// Full field validation, including address and payment method, happens in
// the order constructor; the command checks the identities and the item
// list so a malformed request is rejected before a transaction opens.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID          string
	storeID             string
	category            order.Category
	items               []ItemInput
	totalAmount         float64
	deliveryFee         float64
	deliveryAddress     string
	paymentMethod       string
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a validated command to place an order.
func NewPlaceOrderCommand(
	customerID, storeID string,
	category order.Category,
	items []ItemInput,
	totalAmount, deliveryFee float64,
	deliveryAddress, paymentMethod, specialInstructions string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		category:            category,
		totalAmount:         totalAmount,
		deliveryFee:         deliveryFee,
		deliveryAddress:     deliveryAddress,
		paymentMethod:       paymentMethod,
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setStoreID(storeID),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the placing customer's identity.
func (c PlaceOrderCommand) CustomerID() string { return c.customerID }

// StoreID returns the fulfilling store's identity.
func (c PlaceOrderCommand) StoreID() string { return c.storeID }

// Category returns the order category.
func (c PlaceOrderCommand) Category() order.Category { return c.category }

// Items returns the requested order lines.
func (c PlaceOrderCommand) Items() []ItemInput { return append([]ItemInput(nil), c.items...) }

// TotalAmount returns the order total.
func (c PlaceOrderCommand) TotalAmount() float64 { return c.totalAmount }

// DeliveryFee returns the delivery fee.
func (c PlaceOrderCommand) DeliveryFee() float64 { return c.deliveryFee }

// DeliveryAddress returns the delivery address.
func (c PlaceOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// PaymentMethod returns the chosen payment method.
func (c PlaceOrderCommand) PaymentMethod() string { return c.paymentMethod }

// SpecialInstructions returns free-form instructions, possibly empty.
func (c PlaceOrderCommand) SpecialInstructions() string { return c.specialInstructions }

func (c *PlaceOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setStoreID(storeID string) error {
	if storeID == "" {
		return errs.NewValueIsRequiredError("storeId")
	}
	c.storeID = storeID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = append([]ItemInput(nil), items...)
	return nil
}
