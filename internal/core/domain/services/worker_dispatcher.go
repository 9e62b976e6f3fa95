// Package services contains domain services that coordinate behavior across
// aggregates, here the dispatch policy selecting workers for orders.
package services

import (
	"errors"
	"sync"

	"orderflow/internal/core/domain/model/order"
)

// ErrNoWorkersAvailable indicates the strategy has no worker to offer for
// the requested role. The order stays in its current status until a later
// assignment attempt succeeds.
var ErrNoWorkersAvailable = errors.New("no workers available")

// WorkerRole identifies which fulfillment stage a worker serves.
type WorkerRole string

const (
	RolePicker WorkerRole = "picker"
	RolePacker WorkerRole = "packer"
	RoleRider  WorkerRole = "rider"
)

// AssignmentStrategy selects a worker identity for an order. Implementations
// encapsulate the dispatch policy (round robin, least loaded, geo-nearest);
// the state machine stays agnostic of how workers are chosen.
type AssignmentStrategy interface {
	SelectWorker(role WorkerRole, o *order.Order) (string, error)
}

// RoundRobinStrategy cycles through a fixed pool per role. It is the default
// dispatch policy and is safe for concurrent use.
type RoundRobinStrategy struct {
	mu      sync.Mutex
	pools   map[WorkerRole][]string
	cursors map[WorkerRole]int
}

// NewRoundRobinStrategy creates a strategy over the given worker pools.
// Empty pools are allowed; selection from an empty pool reports
// ErrNoWorkersAvailable.
func NewRoundRobinStrategy(pickers, packers, riders []string) *RoundRobinStrategy {
	return &RoundRobinStrategy{
		pools: map[WorkerRole][]string{
			RolePicker: append([]string(nil), pickers...),
			RolePacker: append([]string(nil), packers...),
			RoleRider:  append([]string(nil), riders...),
		},
		cursors: make(map[WorkerRole]int),
	}
}

// SelectWorker returns the next worker in the role's pool.
func (s *RoundRobinStrategy) SelectWorker(role WorkerRole, _ *order.Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.pools[role]
	if len(pool) == 0 {
		return "", ErrNoWorkersAvailable
	}

	worker := pool[s.cursors[role]%len(pool)]
	s.cursors[role]++
	return worker, nil
}
