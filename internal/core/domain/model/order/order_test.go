package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name, barcode string) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), name, 1, "pcs", barcode)
	require.NoError(t, err)
	return item
}

func placeTestOrder(t *testing.T, category order.Category, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"customer-1", "store-1",
		category,
		items,
		42.50, 4.99,
		"12 Main St", "card", "",
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	now := time.Now()
	items := []*order.Item{mustItem(t, "Milk", "111"), mustItem(t, "Bread", "222")}

	t.Run("should create order in placed status with seeded timeline", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.CategoryGrocery, items, 42.50, 4.99, "12 Main St", "card", "ring twice", now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, "customer-1", o.CustomerID())
		assert.Equal(t, "store-1", o.StoreID())
		assert.Equal(t, order.CategoryGrocery, o.Category())
		assert.Equal(t, "ring twice", o.SpecialInstructions())
		assert.Nil(t, o.PickerID())
		assert.Nil(t, o.PackerID())
		assert.Nil(t, o.RiderID())

		timeline := o.Timeline()
		require.Len(t, timeline, 1)
		assert.Equal(t, order.Placed, timeline[0].Status)
		assert.Equal(t, "Order placed", timeline[0].Message)
	})

	t.Run("should record the placed event", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.CategoryGrocery, items, 42.50, 4.99, "12 Main St", "card", "", now)
		require.NoError(t, err)

		events := o.TakeEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderPlaced, events[0].Name)
		assert.Equal(t, "customer-1", events[0].ActorID)
		assert.Empty(t, o.TakeEvents(), "drain removes events")
	})

	t.Run("should fail without required fields", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.CategoryGrocery, items, 42.50, 4.99, "", "", "", now)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "deliveryAddress")
		assert.Contains(t, err.Error(), "paymentMethod")
	})

	t.Run("should fail with empty item list", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.CategoryGrocery, nil, 42.50, 4.99, "12 Main St", "card", "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should fail with invalid category", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.Category("books"), items, 42.50, 4.99, "12 Main St", "card", "", now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with negative amounts", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.CategoryGrocery, items, -1, 4.99, "12 Main St", "card", "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "totalAmount")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is not constructed", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_TimelineInvariant(t *testing.T) {
	// The last timeline entry's status must always equal the order's status.
	now := time.Now()
	item := mustItem(t, "Milk", "111")
	o := placeTestOrder(t, order.CategoryGrocery, item)

	checkInvariant := func() {
		timeline := o.Timeline()
		require.NotEmpty(t, timeline)
		assert.Equal(t, o.Status(), timeline[len(timeline)-1].Status)
	}

	checkInvariant()
	require.NoError(t, o.Accept(now))
	checkInvariant()
	require.NoError(t, o.AssignPicker("picker-1", now))
	checkInvariant()
	matched, err := o.ScanItem(item.ID(), "111", now)
	require.NoError(t, err)
	require.True(t, matched)
	require.NoError(t, o.CompletePicking(now))
	checkInvariant()
	require.NoError(t, o.AssignPacker("packer-1", now))
	checkInvariant()
	require.NoError(t, o.MarkPacked(item.ID(), "paper_bag", now))
	require.NoError(t, o.CompletePacking(now))
	checkInvariant()
	require.NoError(t, o.AssignRider("rider-1", now))
	checkInvariant()
	require.NoError(t, o.Pickup(now))
	checkInvariant()
	require.NoError(t, o.Deliver(now))
	checkInvariant()

	assert.Equal(t, order.Delivered, o.Status())
	assert.Len(t, o.Timeline(), 10)
}

func TestOrder_Accept(t *testing.T) {
	t.Run("should accept placed order", func(t *testing.T) {
		o := placeTestOrder(t, order.CategoryGrocery, mustItem(t, "Milk", "111"))

		require.NoError(t, o.Accept(time.Now()))

		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("should reject double acceptance and leave state unchanged", func(t *testing.T) {
		o := placeTestOrder(t, order.CategoryGrocery, mustItem(t, "Milk", "111"))
		require.NoError(t, o.Accept(time.Now()))
		before := len(o.Timeline())

		err := o.Accept(time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Len(t, o.Timeline(), before)
	})
}

func TestOrder_Reject(t *testing.T) {
	t.Run("should cancel and record reason in timeline", func(t *testing.T) {
		o := placeTestOrder(t, order.CategoryGrocery, mustItem(t, "Milk", "111"))

		require.NoError(t, o.Reject("store closed", time.Now()))

		assert.Equal(t, order.Cancelled, o.Status())
		timeline := o.Timeline()
		assert.Equal(t, "Order rejected: store closed", timeline[len(timeline)-1].Message)
	})

	t.Run("should require a reason", func(t *testing.T) {
		o := placeTestOrder(t, order.CategoryGrocery, mustItem(t, "Milk", "111"))

		err := o.Reject("", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("should not reject once picking started", func(t *testing.T) {
		o := placeTestOrder(t, order.CategoryGrocery, mustItem(t, "Milk", "111"))
		require.NoError(t, o.Accept(time.Now()))
		require.NoError(t, o.AssignPicker("picker-1", time.Now()))

		err := o.Reject("too late", time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.AssignedToPicker, o.Status())
	})
}

func TestOrder_ScanItem(t *testing.T) {
	now := time.Now()

	setup := func(t *testing.T) (*order.Order, *order.Item) {
		item := mustItem(t, "Milk", "4601234567890")
		o := placeTestOrder(t, order.CategoryGrocery, item)
		require.NoError(t, o.Accept(now))
		require.NoError(t, o.AssignPicker("picker-1", now))
		return o, item
	}

	t.Run("matching barcode marks the item picked", func(t *testing.T) {
		o, item := setup(t)

		matched, err := o.ScanItem(item.ID(), "4601234567890", now)

		require.NoError(t, err)
		assert.True(t, matched)
		got, err := o.Item(item.ID())
		require.NoError(t, err)
		assert.Equal(t, order.ItemPicked, got.Status())
		require.NotNil(t, got.ScannedAt())
	})

	t.Run("mismatched barcode mutates nothing and is retryable", func(t *testing.T) {
		o, item := setup(t)

		matched, err := o.ScanItem(item.ID(), "0000000000000", now)

		require.NoError(t, err)
		assert.False(t, matched)
		got, err := o.Item(item.ID())
		require.NoError(t, err)
		assert.Equal(t, order.ItemPending, got.Status())
		assert.Nil(t, got.ScannedAt())

		matched, err = o.ScanItem(item.ID(), "4601234567890", now)
		require.NoError(t, err)
		assert.True(t, matched)
	})

	t.Run("scanning an already picked item fails", func(t *testing.T) {
		o, item := setup(t)
		_, err := o.ScanItem(item.ID(), "4601234567890", now)
		require.NoError(t, err)

		_, err = o.ScanItem(item.ID(), "4601234567890", now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("scanning an unknown item fails with not found", func(t *testing.T) {
		o, _ := setup(t)

		_, err := o.ScanItem(kernel.NewUUID(), "4601234567890", now)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("scanning outside the picking stage fails", func(t *testing.T) {
		item := mustItem(t, "Milk", "4601234567890")
		o := placeTestOrder(t, order.CategoryGrocery, item)

		_, err := o.ScanItem(item.ID(), "4601234567890", now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_CompletePicking(t *testing.T) {
	now := time.Now()

	t.Run("fails while any item is still pending", func(t *testing.T) {
		scanned := mustItem(t, "Milk", "111")
		pending := mustItem(t, "Bread", "222")
		o := placeTestOrder(t, order.CategoryGrocery, scanned, pending)
		require.NoError(t, o.Accept(now))
		require.NoError(t, o.AssignPicker("picker-1", now))
		_, err := o.ScanItem(scanned.ID(), "111", now)
		require.NoError(t, err)

		err = o.CompletePicking(now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "1 items still pending")
		assert.Equal(t, order.AssignedToPicker, o.Status())
	})

	t.Run("out-of-stock items count toward completion", func(t *testing.T) {
		item := mustItem(t, "Milk", "111")
		o := placeTestOrder(t, order.CategoryGrocery, item)
		require.NoError(t, o.Accept(now))
		require.NoError(t, o.AssignPicker("picker-1", now))
		require.NoError(t, o.MarkOutOfStock(item.ID(), "expired", now))

		require.NoError(t, o.CompletePicking(now))

		assert.Equal(t, order.Picked, o.Status())
		assert.True(t, o.PickingComplete())
	})
}

func TestOrder_Packing(t *testing.T) {
	now := time.Now()

	setupPicked := func(t *testing.T) (*order.Order, *order.Item, *order.Item) {
		a := mustItem(t, "Milk", "111")
		b := mustItem(t, "Bread", "222")
		o := placeTestOrder(t, order.CategoryGrocery, a, b)
		require.NoError(t, o.Accept(now))
		require.NoError(t, o.AssignPicker("picker-1", now))
		for _, it := range []*order.Item{a, b} {
			matched, err := o.ScanItem(it.ID(), it.Barcode(), now)
			require.NoError(t, err)
			require.True(t, matched)
		}
		require.NoError(t, o.CompletePicking(now))
		require.NoError(t, o.AssignPacker("packer-1", now))
		return o, a, b
	}

	t.Run("complete packing fails while picked items remain unpacked", func(t *testing.T) {
		o, a, _ := setupPicked(t)
		require.NoError(t, o.MarkPacked(a.ID(), "paper_bag", now))

		err := o.CompletePacking(now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "1 picked items not yet packed")
	})

	t.Run("packing all picked items completes the stage", func(t *testing.T) {
		o, a, b := setupPicked(t)
		require.NoError(t, o.MarkPacked(a.ID(), "paper_bag", now))
		require.NoError(t, o.MarkPacked(b.ID(), "box", now))

		require.NoError(t, o.CompletePacking(now))

		assert.Equal(t, order.Packed, o.Status())
		got, err := o.Item(a.ID())
		require.NoError(t, err)
		assert.Equal(t, "paper_bag", got.PackageType())
	})

	t.Run("an all-out-of-stock order completes packing immediately", func(t *testing.T) {
		item := mustItem(t, "Milk", "111")
		o := placeTestOrder(t, order.CategoryGrocery, item)
		require.NoError(t, o.Accept(now))
		require.NoError(t, o.AssignPicker("picker-1", now))
		require.NoError(t, o.MarkOutOfStock(item.ID(), "expired", now))
		require.NoError(t, o.CompletePicking(now))
		require.NoError(t, o.AssignPacker("packer-1", now))

		require.NoError(t, o.CompletePacking(now))

		assert.Equal(t, order.Packed, o.Status())
	})

	t.Run("out-of-stock items cannot be packed", func(t *testing.T) {
		a := mustItem(t, "Milk", "111")
		b := mustItem(t, "Bread", "222")
		o := placeTestOrder(t, order.CategoryGrocery, a, b)
		require.NoError(t, o.Accept(now))
		require.NoError(t, o.AssignPicker("picker-1", now))
		require.NoError(t, o.MarkOutOfStock(a.ID(), "expired", now))
		matched, err := o.ScanItem(b.ID(), "222", now)
		require.NoError(t, err)
		require.True(t, matched)
		require.NoError(t, o.CompletePicking(now))
		require.NoError(t, o.AssignPacker("packer-1", now))

		err = o.MarkPacked(a.ID(), "box", now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Pickup(t *testing.T) {
	now := time.Now()
	item := mustItem(t, "Milk", "111")
	o := placeTestOrder(t, order.CategoryGrocery, item)
	require.NoError(t, o.Accept(now))
	require.NoError(t, o.AssignPicker("picker-1", now))
	matched, err := o.ScanItem(item.ID(), "111", now)
	require.NoError(t, err)
	require.True(t, matched)
	require.NoError(t, o.CompletePicking(now))
	require.NoError(t, o.AssignPacker("packer-1", now))
	require.NoError(t, o.MarkPacked(item.ID(), "bag", now))
	require.NoError(t, o.CompletePacking(now))
	require.NoError(t, o.AssignRider("rider-1", now))
	o.TakeEvents()

	require.NoError(t, o.Pickup(now))

	// Pickup covers both collection and departure in one command.
	assert.Equal(t, order.OutForDelivery, o.Status())
	timeline := o.Timeline()
	require.GreaterOrEqual(t, len(timeline), 2)
	assert.Equal(t, order.PickedUp, timeline[len(timeline)-2].Status)
	assert.Equal(t, order.OutForDelivery, timeline[len(timeline)-1].Status)

	events := o.TakeEvents()
	require.Len(t, events, 1)
	assert.Equal(t, order.EventOrderPickedUp, events[0].Name)
	assert.Equal(t, "rider-1", events[0].ActorID)
}

func TestOrder_Events(t *testing.T) {
	now := time.Now()
	item := mustItem(t, "Milk", "111")
	o := placeTestOrder(t, order.CategoryGrocery, item)
	o.TakeEvents()

	require.NoError(t, o.Accept(now))
	require.NoError(t, o.AssignPicker("picker-1", now))
	matched, err := o.ScanItem(item.ID(), "111", now)
	require.NoError(t, err)
	require.True(t, matched)

	events := o.TakeEvents()
	require.Len(t, events, 3)
	assert.Equal(t, order.EventOrderAccepted, events[0].Name)
	assert.Equal(t, order.EventOrderAssignedToPicker, events[1].Name)
	assert.Equal(t, order.EventOrderItemScanned, events[2].Name)
	assert.Equal(t, item.ID().String(), events[2].ItemID)
}

func TestOrder_Progress(t *testing.T) {
	start := time.Now()

	t.Run("estimated remaining unavailable before first completion", func(t *testing.T) {
		a := mustItem(t, "Milk", "111")
		b := mustItem(t, "Bread", "222")
		o := placeTestOrder(t, order.CategoryGrocery, a, b)
		require.NoError(t, o.Accept(start))
		require.NoError(t, o.AssignPicker("picker-1", start))

		p := o.PickingProgress(start.Add(time.Minute))

		assert.Equal(t, 2, p.Total)
		assert.Equal(t, 2, p.Remaining)
		assert.Zero(t, p.Percent)
		assert.Nil(t, p.EstimatedRemaining)
	})

	t.Run("estimated remaining derives from average time per item", func(t *testing.T) {
		a := mustItem(t, "Milk", "111")
		b := mustItem(t, "Bread", "222")
		o := placeTestOrder(t, order.CategoryGrocery, a, b)
		require.NoError(t, o.Accept(start))
		require.NoError(t, o.AssignPicker("picker-1", start))
		matched, err := o.ScanItem(a.ID(), "111", start.Add(time.Minute))
		require.NoError(t, err)
		require.True(t, matched)

		p := o.PickingProgress(start.Add(time.Minute))

		assert.Equal(t, 1, p.Picked)
		assert.Equal(t, 1, p.Remaining)
		assert.InDelta(t, 50.0, p.Percent, 0.01)
		require.NotNil(t, p.EstimatedRemaining)
		assert.Equal(t, time.Minute, *p.EstimatedRemaining)
	})

	t.Run("packing progress excludes out-of-stock items", func(t *testing.T) {
		a := mustItem(t, "Milk", "111")
		b := mustItem(t, "Bread", "222")
		o := placeTestOrder(t, order.CategoryGrocery, a, b)
		require.NoError(t, o.Accept(start))
		require.NoError(t, o.AssignPicker("picker-1", start))
		require.NoError(t, o.MarkOutOfStock(a.ID(), "expired", start))
		matched, err := o.ScanItem(b.ID(), "222", start)
		require.NoError(t, err)
		require.True(t, matched)
		require.NoError(t, o.CompletePicking(start))
		require.NoError(t, o.AssignPacker("packer-1", start))

		p := o.PackingProgress(start)

		assert.Equal(t, 1, p.Total)
		assert.Equal(t, 1, p.Remaining)
		assert.Equal(t, 1, p.OutOfStock)
	})
}

func TestOrder_Clone(t *testing.T) {
	now := time.Now()
	item := mustItem(t, "Milk", "111")
	o := placeTestOrder(t, order.CategoryGrocery, item)
	require.NoError(t, o.Accept(now))
	require.NoError(t, o.AssignPicker("picker-1", now))

	clone := o.Clone()

	require.NoError(t, clone.Validate())
	assert.True(t, clone.IsEqual(o))
	assert.Equal(t, o.Status(), clone.Status())
	assert.Empty(t, clone.TakeEvents(), "pending events stay with the original")

	// Mutating the clone must not leak into the original.
	matched, err := clone.ScanItem(item.ID(), "111", now)
	require.NoError(t, err)
	require.True(t, matched)
	got, err := o.Item(item.ID())
	require.NoError(t, err)
	assert.Equal(t, order.ItemPending, got.Status())
}

func TestRestoreOrder(t *testing.T) {
	now := time.Now()

	t.Run("should rehydrate a mid-flight order", func(t *testing.T) {
		item := mustItem(t, "Milk", "111")
		picker := "picker-1"
		timeline := []order.TimelineEntry{
			{Status: order.Placed, Message: "Order placed", Timestamp: now},
			{Status: order.Accepted, Message: "Order accepted by store", Timestamp: now},
			{Status: order.AssignedToPicker, Message: "Picker assigned", Timestamp: now},
		}

		o, err := order.RestoreOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.CategoryGrocery, []*order.Item{item}, order.AssignedToPicker,
			42.50, 4.99, "12 Main St", "card", "",
			&picker, nil, nil, timeline, now, &now, nil)

		require.NoError(t, err)
		assert.Equal(t, order.AssignedToPicker, o.Status())
		require.NotNil(t, o.PickerID())
		assert.Equal(t, "picker-1", *o.PickerID())
		assert.Empty(t, o.TakeEvents(), "restore records no events")
	})

	t.Run("should reject timeline not matching status", func(t *testing.T) {
		item := mustItem(t, "Milk", "111")
		timeline := []order.TimelineEntry{
			{Status: order.Placed, Message: "Order placed", Timestamp: now},
		}

		_, err := order.RestoreOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.CategoryGrocery, []*order.Item{item}, order.Accepted,
			42.50, 4.99, "12 Main St", "card", "",
			nil, nil, nil, timeline, now, nil, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeline")
	})

	t.Run("should reject empty timeline", func(t *testing.T) {
		item := mustItem(t, "Milk", "111")

		_, err := order.RestoreOrder(kernel.NewUUID(), "customer-1", "store-1",
			order.CategoryGrocery, []*order.Item{item}, order.Placed,
			42.50, 4.99, "12 Main St", "card", "",
			nil, nil, nil, nil, now, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCategory(t *testing.T) {
	t.Run("food delivery skips picker auto-assignment", func(t *testing.T) {
		assert.True(t, order.CategoryGrocery.AutoAssignsPicker())
		assert.True(t, order.CategoryPharmacy.AutoAssignsPicker())
		assert.True(t, order.CategoryElectronics.AutoAssignsPicker())
		assert.False(t, order.CategoryFoodDelivery.AutoAssignsPicker())
	})

	t.Run("validate rejects unknown categories", func(t *testing.T) {
		require.NoError(t, order.CategoryGrocery.Validate())
		require.Error(t, order.Category("books").Validate())
	})
}
