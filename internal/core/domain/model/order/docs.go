// Package order provides the domain model for the order lifecycle. It
// implements the Order aggregate root with its status state machine, the
// per-item pick/pack sub-workflow, the append-only timeline, and the domain
// events recorded on every transition.
//
// The package includes:
//   - Order: the aggregate root coordinating status, items, timeline, and events
//   - Status: a state machine enforcing the fulfillment workflow
//   - Item: an entity tracking one line of the pick/pack sub-workflow
//   - Progress: a point-in-time readout of a pick or pack stage
//
// Key business rules:
//   - placed -> accepted -> assigned_to_picker -> picked -> assigned_to_packer
//     -> packed -> assigned_to_rider -> picked_up -> out_for_delivery
//     -> delivered, with cancelled reachable from placed or accepted only
//   - Picking completes when every item is picked or out_of_stock
//   - Packing completes when every picked item is packed; out-of-stock items
//     are excluded from packing
//   - The timeline is append-only and its last entry always matches the
//     order's current status
//
// The package follows Domain-Driven Design principles: rich behavior,
// encapsulated state, and validation enforced at construction and on every
// transition.
package order
