package order

import "time"

// TimelineEntry is one element of an order's append-only audit trail.
// The last entry's Status always equals the order's current status.
type TimelineEntry struct {
	Status    Status
	Message   string
	Timestamp time.Time
}
