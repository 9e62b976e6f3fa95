package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions so orders always follow the fulfillment
// workflow.
//
// State transitions:
//
//	Placed ──> Accepted ──> AssignedToPicker ──> Picked ──> AssignedToPacker
//	   │           │                                              │
//	   └──> Cancelled <──┘                                        v
//	                                                           Packed
//	                                                              │
//	  Delivered <── OutForDelivery <── PickedUp <── AssignedToRider
//	      ^                               │
//	      └───────────────────────────────┘
//
// Delivered and Cancelled are terminal. Status is a value object that
// validates transitions and provides the snake_case wire names used in
// timelines, events, and persistence.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when a customer places an order.
	Placed

	// Accepted indicates the store accepted the order.
	Accepted

	// AssignedToPicker indicates a picker is working the order's items.
	AssignedToPicker

	// Picked indicates every item reached a terminal pick state.
	Picked

	// AssignedToPacker indicates a packer is packing the picked items.
	AssignedToPacker

	// Packed indicates every picked item has been packed.
	Packed

	// AssignedToRider indicates a rider is en route to collect the order.
	AssignedToRider

	// PickedUp indicates the rider collected the order from the store.
	PickedUp

	// OutForDelivery indicates the rider is delivering to the customer.
	OutForDelivery

	// Delivered indicates the customer confirmed receipt with the OTP.
	// This is a final state with no further transitions.
	Delivered

	// Cancelled indicates the order was rejected before fulfillment began.
	// This is a final state with no further transitions.
	Cancelled
)

// getStatusStrings returns the snake_case wire names for all Status values,
// including Unknown, to support string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Placed:           "placed",
		Accepted:         "accepted",
		AssignedToPicker: "assigned_to_picker",
		Picked:           "picked",
		AssignedToPacker: "assigned_to_packer",
		Packed:           "packed",
		AssignedToRider:  "assigned_to_rider",
		PickedUp:         "picked_up",
		OutForDelivery:   "out_for_delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// StatusFromString parses a snake_case wire name back into a Status.
// Used when rehydrating orders from persistence.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status holds one of the defined lifecycle values.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case wire name of the status. It implements
// fmt.Stringer and is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Accept transitions the status to Accepted. Valid only from Placed.
func (s Status) Accept() (Status, error) {
	if s != Placed {
		return 0, errs.NewInvalidTransitionError("accept", s.String())
	}
	return Accepted, nil
}

// Reject transitions the status to Cancelled. Valid from Placed or Accepted;
// once fulfillment has started the order can no longer be rejected.
func (s Status) Reject() (Status, error) {
	if s != Placed && s != Accepted {
		return 0, errs.NewInvalidTransitionError("reject", s.String())
	}
	return Cancelled, nil
}

// AssignPicker transitions the status to AssignedToPicker. Valid only from
// Accepted.
func (s Status) AssignPicker() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidTransitionError("assign picker", s.String())
	}
	return AssignedToPicker, nil
}

// CompletePicking transitions the status to Picked. Valid only from
// AssignedToPicker. Item-level completeness is enforced by the aggregate.
func (s Status) CompletePicking() (Status, error) {
	if s != AssignedToPicker {
		return 0, errs.NewInvalidTransitionError("complete picking", s.String())
	}
	return Picked, nil
}

// AssignPacker transitions the status to AssignedToPacker. Valid only from
// Picked.
func (s Status) AssignPacker() (Status, error) {
	if s != Picked {
		return 0, errs.NewInvalidTransitionError("assign packer", s.String())
	}
	return AssignedToPacker, nil
}

// CompletePacking transitions the status to Packed. Valid only from
// AssignedToPacker.
func (s Status) CompletePacking() (Status, error) {
	if s != AssignedToPacker {
		return 0, errs.NewInvalidTransitionError("complete packing", s.String())
	}
	return Packed, nil
}

// AssignRider transitions the status to AssignedToRider. Valid only from
// Packed.
func (s Status) AssignRider() (Status, error) {
	if s != Packed {
		return 0, errs.NewInvalidTransitionError("assign rider", s.String())
	}
	return AssignedToRider, nil
}

// Pickup transitions the status to PickedUp. Valid only from AssignedToRider.
func (s Status) Pickup() (Status, error) {
	if s != AssignedToRider {
		return 0, errs.NewInvalidTransitionError("pick up", s.String())
	}
	return PickedUp, nil
}

// Depart transitions the status to OutForDelivery. Valid only from PickedUp.
func (s Status) Depart() (Status, error) {
	if s != PickedUp {
		return 0, errs.NewInvalidTransitionError("depart", s.String())
	}
	return OutForDelivery, nil
}

// Deliver transitions the status to Delivered. Valid from PickedUp or
// OutForDelivery. OTP verification is enforced before this transition is
// attempted.
func (s Status) Deliver() (Status, error) {
	if s != PickedUp && s != OutForDelivery {
		return 0, errs.NewInvalidTransitionError("deliver", s.String())
	}
	return Delivered, nil
}
