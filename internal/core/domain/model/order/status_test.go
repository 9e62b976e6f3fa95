package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	t.Run("should return snake_case wire names", func(t *testing.T) {
		cases := map[order.Status]string{
			order.Placed:           "placed",
			order.Accepted:         "accepted",
			order.AssignedToPicker: "assigned_to_picker",
			order.Picked:           "picked",
			order.AssignedToPacker: "assigned_to_packer",
			order.Packed:           "packed",
			order.AssignedToRider:  "assigned_to_rider",
			order.PickedUp:         "picked_up",
			order.OutForDelivery:   "out_for_delivery",
			order.Delivered:        "delivered",
			order.Cancelled:        "cancelled",
		}
		for status, expected := range cases {
			assert.Equal(t, expected, status.String())
		}
	})

	t.Run("should return unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip all valid statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Placed, order.Accepted, order.AssignedToPicker, order.Picked,
			order.AssignedToPacker, order.Packed, order.AssignedToRider,
			order.PickedUp, order.OutForDelivery, order.Delivered, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject the unknown name itself", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")

		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		require.NoError(t, order.Placed.Validate())
		require.NoError(t, order.Delivered.Validate())
	})

	t.Run("unknown and out-of-range fail", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Placed.IsTerminal())
	assert.False(t, order.OutForDelivery.IsTerminal())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("happy path walks the full workflow", func(t *testing.T) {
		s := order.Placed

		s, err := s.Accept()
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, s)

		s, err = s.AssignPicker()
		require.NoError(t, err)
		assert.Equal(t, order.AssignedToPicker, s)

		s, err = s.CompletePicking()
		require.NoError(t, err)
		assert.Equal(t, order.Picked, s)

		s, err = s.AssignPacker()
		require.NoError(t, err)
		assert.Equal(t, order.AssignedToPacker, s)

		s, err = s.CompletePacking()
		require.NoError(t, err)
		assert.Equal(t, order.Packed, s)

		s, err = s.AssignRider()
		require.NoError(t, err)
		assert.Equal(t, order.AssignedToRider, s)

		s, err = s.Pickup()
		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, s)

		s, err = s.Depart()
		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, s)

		s, err = s.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)
	})

	t.Run("reject is valid from placed and accepted only", func(t *testing.T) {
		s, err := order.Placed.Reject()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, s)

		s, err = order.Accepted.Reject()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, s)

		_, err = order.AssignedToPicker.Reject()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("deliver is valid from picked_up and out_for_delivery", func(t *testing.T) {
		_, err := order.PickedUp.Deliver()
		require.NoError(t, err)

		_, err = order.OutForDelivery.Deliver()
		require.NoError(t, err)

		_, err = order.AssignedToRider.Deliver()
		require.Error(t, err)
	})

	t.Run("invalid transitions carry the source status", func(t *testing.T) {
		_, err := order.Delivered.Accept()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, "invalid transition: cannot accept from status delivered", err.Error())
	})

	t.Run("terminal statuses allow no transitions", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Cancelled} {
			_, err := s.Accept()
			assert.Error(t, err)
			_, err = s.Reject()
			assert.Error(t, err)
			_, err = s.AssignPicker()
			assert.Error(t, err)
			_, err = s.Deliver()
			assert.Error(t, err)
		}
	})
}
