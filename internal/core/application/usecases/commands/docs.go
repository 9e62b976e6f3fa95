// Package commands contains the write side of the orchestrator: one
// constructor-validated command plus handler per actor action. Every handler
// follows the same shape: validate the command, open a unit of work, load
// the order, apply the domain transition, commit atomically with the
// projection updates, then publish the recorded events best effort.
//
// Auto-assignment chains (accept -> picker, picking done -> packer, packing
// done -> rider) run through WorkerAssigner after the triggering command
// commits. A chain link that finds no available worker leaves the order in
// its prerequisite status for the assignment sweep to retry.
package commands
