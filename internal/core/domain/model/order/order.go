package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"orderflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder factory method. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root coordinating one retail order across its
// actors. It is the single authority for the order's status: only its
// transition methods mutate the status, append to the timeline, or record
// domain events.
//
// Order follows these invariants:
//   - The timeline is append-only and non-empty once the order exists.
//   - The last timeline entry's status equals the order's current status.
//   - Items transition to packed only from picked; out-of-stock items are
//     excluded from packing.
//   - A failed transition leaves the aggregate untouched.
//
// Private fields keep the aggregate encapsulated; state is read through
// getters and mutated through validated transition methods.
type Order struct {
	id         kernel.UUID
	customerID string
	storeID    string
	category   Category
	items      []*Item
	status     Status

	totalAmount         float64
	deliveryFee         float64
	deliveryAddress     string
	paymentMethod       string
	specialInstructions string

	pickerID *string
	packerID *string
	riderID  *string

	timeline []TimelineEntry

	createdAt        time.Time
	pickingStartedAt *time.Time
	packingStartedAt *time.Time

	events []Event

	isConstructed bool
}

// NewOrder creates a new Order in the placed status, seeds the timeline, and
// records the order.placed event. This is the only way to create a valid
// Order; all construction invariants are validated and joined into a single
// error.
func NewOrder(
	id kernel.UUID,
	customerID, storeID string,
	category Category,
	items []*Item,
	totalAmount, deliveryFee float64,
	deliveryAddress, paymentMethod, specialInstructions string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:              Placed,
		specialInstructions: specialInstructions,
		createdAt:           now,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setCategory(category),
		o.setItems(items),
		o.setAmounts(totalAmount, deliveryFee),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.appendTimeline(Placed, "Order placed", now)
	o.recordEvent(Event{
		Name:       EventOrderPlaced,
		OrderID:    o.id,
		ActorID:    o.customerID,
		OccurredAt: now,
		Status:     Placed.String(),
	})

	return o, nil
}

// RestoreOrder rehydrates an Order from persistence. The timeline must be
// non-empty and end with the given status; no domain events are recorded.
func RestoreOrder(
	id kernel.UUID,
	customerID, storeID string,
	category Category,
	items []*Item,
	status Status,
	totalAmount, deliveryFee float64,
	deliveryAddress, paymentMethod, specialInstructions string,
	pickerID, packerID, riderID *string,
	timeline []TimelineEntry,
	createdAt time.Time,
	pickingStartedAt, packingStartedAt *time.Time,
) (*Order, error) {
	o := &Order{
		specialInstructions: specialInstructions,
		createdAt:           createdAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setCategory(category),
		o.setItems(items),
		o.setAmounts(totalAmount, deliveryFee),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if len(timeline) == 0 {
		return nil, errs.NewValueIsRequiredError("timeline")
	}
	if timeline[len(timeline)-1].Status != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("timeline",
			fmt.Errorf("last entry status %s does not match order status %s",
				timeline[len(timeline)-1].Status, status))
	}

	o.status = status
	o.timeline = append([]TimelineEntry(nil), timeline...)
	o.pickerID = copyStringPtr(pickerID)
	o.packerID = copyStringPtr(packerID)
	o.riderID = copyStringPtr(riderID)
	o.pickingStartedAt = copyTimePtr(pickingStartedAt)
	o.packingStartedAt = copyTimePtr(packingStartedAt)

	return o, nil
}

// Validate ensures the Order was properly constructed through NewOrder or
// RestoreOrder, preventing direct struct instantiation from bypassing
// validation.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the identity of the customer who placed the order.
func (o *Order) CustomerID() string { return o.customerID }

// StoreID returns the identity of the fulfilling store.
func (o *Order) StoreID() string { return o.storeID }

// Category returns the order's category.
func (o *Order) Category() Category { return o.category }

// Status returns the current status of the order.
func (o *Order) Status() Status { return o.status }

// TotalAmount returns the order total.
func (o *Order) TotalAmount() float64 { return o.totalAmount }

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() float64 { return o.deliveryFee }

// DeliveryAddress returns the delivery address.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// PaymentMethod returns the payment method chosen at placement.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// SpecialInstructions returns free-form instructions, possibly empty.
func (o *Order) SpecialInstructions() string { return o.specialInstructions }

// PickerID returns the assigned picker's identity, nil if unassigned.
func (o *Order) PickerID() *string { return copyStringPtr(o.pickerID) }

// PackerID returns the assigned packer's identity, nil if unassigned.
func (o *Order) PackerID() *string { return copyStringPtr(o.packerID) }

// RiderID returns the assigned rider's identity, nil if unassigned.
func (o *Order) RiderID() *string { return copyStringPtr(o.riderID) }

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// PickingStartedAt returns when the picking stage began, nil before picker
// assignment.
func (o *Order) PickingStartedAt() *time.Time { return copyTimePtr(o.pickingStartedAt) }

// PackingStartedAt returns when the packing stage began, nil before packer
// assignment.
func (o *Order) PackingStartedAt() *time.Time { return copyTimePtr(o.packingStartedAt) }

// Items returns a deep copy of the order's items in placement order.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	for i, item := range o.items {
		items[i] = item.clone()
	}
	return items
}

// Item returns a deep copy of the item with the given ID.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	item, err := o.findItem(itemID)
	if err != nil {
		return nil, err
	}
	return item.clone(), nil
}

// Timeline returns a copy of the append-only audit trail.
func (o *Order) Timeline() []TimelineEntry {
	return append([]TimelineEntry(nil), o.timeline...)
}

// TakeEvents drains and returns the domain events recorded since the last
// drain. Called after the mutation commits to publish the events.
func (o *Order) TakeEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// Accept transitions the order to accepted. Valid only from placed.
func (o *Order) Accept(now time.Time) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendTimeline(newStatus, "Order accepted by store", now)
	o.recordEvent(Event{
		Name:       EventOrderAccepted,
		OrderID:    o.id,
		ActorID:    o.storeID,
		OccurredAt: now,
		Status:     newStatus.String(),
	})
	return nil
}

// Reject transitions the order to cancelled, recording the reason in the
// timeline message. Valid only from placed or accepted.
func (o *Order) Reject(reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendTimeline(newStatus, "Order rejected: "+reason, now)
	o.recordEvent(Event{
		Name:       EventOrderRejected,
		OrderID:    o.id,
		ActorID:    o.storeID,
		OccurredAt: now,
		Status:     newStatus.String(),
		Reason:     reason,
	})
	return nil
}

// AssignPicker assigns a picker and starts the picking stage. Valid only
// from accepted. All items are already pending, so the sub-workflow needs no
// separate initialization.
func (o *Order) AssignPicker(pickerID string, now time.Time) error {
	if pickerID == "" {
		return errs.NewValueIsRequiredError("pickerId")
	}

	newStatus, err := o.status.AssignPicker()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.pickerID = &pickerID
	t := now
	o.pickingStartedAt = &t
	o.appendTimeline(newStatus, "Picker assigned", now)
	o.recordEvent(Event{
		Name:       EventOrderAssignedToPicker,
		OrderID:    o.id,
		ActorID:    pickerID,
		OccurredAt: now,
		Status:     newStatus.String(),
	})
	return nil
}

// ScanItem verifies a scanned barcode against the item's expected barcode.
// On match the item transitions to picked and the scan is recorded; on
// mismatch nothing is mutated and matched is false so the scan can be
// retried. Valid only while the order is assigned to a picker.
func (o *Order) ScanItem(itemID kernel.UUID, scannedCode string, now time.Time) (matched bool, err error) {
	if o.status != AssignedToPicker {
		return false, errs.NewInvalidTransitionError("scan item", o.status.String())
	}

	item, err := o.findItem(itemID)
	if err != nil {
		return false, err
	}

	if !item.MatchesBarcode(scannedCode) {
		return false, nil
	}

	if err := item.markPicked(now); err != nil {
		return false, err
	}

	o.recordEvent(Event{
		Name:       EventOrderItemScanned,
		OrderID:    o.id,
		ActorID:    *o.pickerID,
		OccurredAt: now,
		Status:     o.status.String(),
		ItemID:     item.ID().String(),
	})
	return true, nil
}

// MarkOutOfStock transitions an item to out_of_stock with the given reason.
// Valid only while the order is assigned to a picker.
func (o *Order) MarkOutOfStock(itemID kernel.UUID, reason string, now time.Time) error {
	if o.status != AssignedToPicker {
		return errs.NewInvalidTransitionError("mark out of stock", o.status.String())
	}

	item, err := o.findItem(itemID)
	if err != nil {
		return err
	}

	if err := item.markOutOfStock(reason); err != nil {
		return err
	}

	o.recordEvent(Event{
		Name:       EventOrderItemOutOfStock,
		OrderID:    o.id,
		ActorID:    *o.pickerID,
		OccurredAt: now,
		Status:     o.status.String(),
		ItemID:     item.ID().String(),
		Reason:     reason,
	})
	return nil
}

// CompletePicking transitions the order to picked. Valid only when every
// item has reached a terminal pick state (picked or out_of_stock).
func (o *Order) CompletePicking(now time.Time) error {
	newStatus, err := o.status.CompletePicking()
	if err != nil {
		return err
	}

	if pending := o.countItems(ItemPending); pending > 0 {
		return errs.NewInvalidTransitionErrorWithCause("complete picking", o.status.String(),
			fmt.Errorf("%d items still pending", pending))
	}

	o.status = newStatus
	o.appendTimeline(newStatus, "All items picked", now)
	o.recordEvent(Event{
		Name:       EventOrderPicked,
		OrderID:    o.id,
		ActorID:    *o.pickerID,
		OccurredAt: now,
		Status:     newStatus.String(),
	})
	return nil
}

// AssignPacker assigns a packer and starts the packing stage. Valid only
// from picked.
func (o *Order) AssignPacker(packerID string, now time.Time) error {
	if packerID == "" {
		return errs.NewValueIsRequiredError("packerId")
	}

	newStatus, err := o.status.AssignPacker()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.packerID = &packerID
	t := now
	o.packingStartedAt = &t
	o.appendTimeline(newStatus, "Packer assigned", now)
	o.recordEvent(Event{
		Name:       EventOrderAssignedToPacker,
		OrderID:    o.id,
		ActorID:    packerID,
		OccurredAt: now,
		Status:     newStatus.String(),
	})
	return nil
}

// MarkPacked records a packed item with its package type. Valid only while
// the order is assigned to a packer and the item is picked.
func (o *Order) MarkPacked(itemID kernel.UUID, packageType string, now time.Time) error {
	if o.status != AssignedToPacker {
		return errs.NewInvalidTransitionError("mark packed", o.status.String())
	}

	item, err := o.findItem(itemID)
	if err != nil {
		return err
	}

	if err := item.markPacked(packageType); err != nil {
		return err
	}

	o.recordEvent(Event{
		Name:        EventOrderItemPacked,
		OrderID:     o.id,
		ActorID:     *o.packerID,
		OccurredAt:  now,
		Status:      o.status.String(),
		ItemID:      item.ID().String(),
		PackageType: packageType,
	})
	return nil
}

// CompletePacking transitions the order to packed. Valid only when every
// picked item has been marked packed. An order whose items all went out of
// stock has nothing to pack and completes immediately.
func (o *Order) CompletePacking(now time.Time) error {
	newStatus, err := o.status.CompletePacking()
	if err != nil {
		return err
	}

	if unpacked := o.countItems(ItemPicked); unpacked > 0 {
		return errs.NewInvalidTransitionErrorWithCause("complete packing", o.status.String(),
			fmt.Errorf("%d picked items not yet packed", unpacked))
	}

	o.status = newStatus
	o.appendTimeline(newStatus, "All items packed", now)
	o.recordEvent(Event{
		Name:       EventOrderPacked,
		OrderID:    o.id,
		ActorID:    *o.packerID,
		OccurredAt: now,
		Status:     newStatus.String(),
	})
	return nil
}

// AssignRider assigns a rider for the delivery leg. Valid only from packed.
func (o *Order) AssignRider(riderID string, now time.Time) error {
	if riderID == "" {
		return errs.NewValueIsRequiredError("riderId")
	}

	newStatus, err := o.status.AssignRider()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.riderID = &riderID
	o.appendTimeline(newStatus, "Rider assigned", now)
	o.recordEvent(Event{
		Name:       EventOrderAssignedToRider,
		OrderID:    o.id,
		ActorID:    riderID,
		OccurredAt: now,
		Status:     newStatus.String(),
	})
	return nil
}

// Pickup records the rider collecting the order and immediately departing:
// the order transitions through picked_up to out_for_delivery, appending a
// timeline entry for each. Valid only from assigned_to_rider. Delivery OTP
// issuance is triggered by the handler after this transition commits.
func (o *Order) Pickup(now time.Time) error {
	pickedUp, err := o.status.Pickup()
	if err != nil {
		return err
	}
	outForDelivery, err := pickedUp.Depart()
	if err != nil {
		return err
	}

	o.status = pickedUp
	o.appendTimeline(pickedUp, "Order picked up by rider", now)
	o.recordEvent(Event{
		Name:       EventOrderPickedUp,
		OrderID:    o.id,
		ActorID:    *o.riderID,
		OccurredAt: now,
		Status:     pickedUp.String(),
	})

	o.status = outForDelivery
	o.appendTimeline(outForDelivery, "Out for delivery", now)
	return nil
}

// Deliver transitions the order to delivered. Valid from picked_up or
// out_for_delivery. The caller must have verified the customer's OTP first.
func (o *Order) Deliver(now time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendTimeline(newStatus, "Order delivered", now)
	o.recordEvent(Event{
		Name:       EventOrderDelivered,
		OrderID:    o.id,
		ActorID:    *o.riderID,
		OccurredAt: now,
		Status:     newStatus.String(),
	})
	return nil
}

// PickingComplete reports whether every item reached a terminal pick state.
func (o *Order) PickingComplete() bool {
	return o.countItems(ItemPending) == 0
}

// PackingComplete reports whether every picked item has been packed.
func (o *Order) PackingComplete() bool {
	return o.countItems(ItemPicked) == 0
}

// PickingProgress returns the picking stage readout at the given time.
func (o *Order) PickingProgress(now time.Time) Progress {
	picked := o.countItems(ItemPicked) + o.countItems(ItemPacked)
	outOfStock := o.countItems(ItemOutOfStock)
	total := len(o.items)
	done := picked + outOfStock

	p := stageProgress(total, done, total-done, o.pickingStartedAt, now)
	p.Picked = picked
	p.OutOfStock = outOfStock
	p.Packed = o.countItems(ItemPacked)
	return p
}

// PackingProgress returns the packing stage readout at the given time.
// Out-of-stock items are excluded from the packable set.
func (o *Order) PackingProgress(now time.Time) Progress {
	packed := o.countItems(ItemPacked)
	packable := o.countItems(ItemPicked) + packed

	p := stageProgress(packable, packed, packable-packed, o.packingStartedAt, now)
	p.Picked = o.countItems(ItemPicked) + packed
	p.OutOfStock = o.countItems(ItemOutOfStock)
	p.Packed = packed
	return p
}

// Clone returns a deep copy of the order. Pending events are not copied;
// they belong to the instance that recorded them.
func (o *Order) Clone() *Order {
	c := *o
	c.items = make([]*Item, len(o.items))
	for i, item := range o.items {
		c.items[i] = item.clone()
	}
	c.timeline = append([]TimelineEntry(nil), o.timeline...)
	c.pickerID = copyStringPtr(o.pickerID)
	c.packerID = copyStringPtr(o.packerID)
	c.riderID = copyStringPtr(o.riderID)
	c.pickingStartedAt = copyTimePtr(o.pickingStartedAt)
	c.packingStartedAt = copyTimePtr(o.packingStartedAt)
	c.events = nil
	return &c
}

func (o *Order) appendTimeline(status Status, message string, now time.Time) {
	o.timeline = append(o.timeline, TimelineEntry{
		Status:    status,
		Message:   message,
		Timestamp: now,
	})
}

func (o *Order) recordEvent(event Event) {
	o.events = append(o.events, event)
}

func (o *Order) findItem(itemID kernel.UUID) (*Item, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

func (o *Order) countItems(status ItemStatus) int {
	n := 0
	for _, item := range o.items {
		if item.Status() == status {
			n++
		}
	}
	return n
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStoreID(storeID string) error {
	if storeID == "" {
		return errs.NewValueIsRequiredError("storeId")
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	o.category = category
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]*Item, len(items))
	for i, item := range items {
		o.items[i] = item.clone()
	}
	return nil
}

func (o *Order) setAmounts(totalAmount, deliveryFee float64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%v is negative", totalAmount))
	}
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%v is negative", deliveryFee))
	}
	o.totalAmount = totalAmount
	o.deliveryFee = deliveryFee
	return nil
}

func (o *Order) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = deliveryAddress
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	o.paymentMethod = paymentMethod
	return nil
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
