package queries

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetActorOrdersQueryIsNotConstructed = errors.New(
	"GetActorOrdersQuery must be created via NewGetActorOrdersQuery constructor",
)

// ActorRole names the perspective a caller reads orders from. Customers and
// stores see orders they own; workers see orders assigned to them in that
// role.
type ActorRole string

const (
	ActorCustomer ActorRole = "customer"
	ActorStore    ActorRole = "store"
	ActorPicker   ActorRole = "picker"
	ActorPacker   ActorRole = "packer"
	ActorRider    ActorRole = "rider"
)

// ActorRoleFromString parses the wire name of a role.
func ActorRoleFromString(value string) (ActorRole, error) {
	switch role := ActorRole(value); role {
	case ActorCustomer, ActorStore, ActorPicker, ActorPacker, ActorRider:
		return role, nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

// GetActorOrdersQuery retrieves the orders visible to one actor in one role.
type GetActorOrdersQuery struct { //nolint:recvcheck //using for validation
	role    ActorRole
	actorID string

	guard guard.ConstructorGuard
}

// NewGetActorOrdersQuery creates a validated query for an actor's order view.
func NewGetActorOrdersQuery(role ActorRole, actorID string) (GetActorOrdersQuery, error) {
	q := GetActorOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setRole(role),
		q.setActorID(actorID),
	); err != nil {
		return GetActorOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActorOrdersQueryIsNotConstructed)
}

// Role returns the perspective being read.
func (q GetActorOrdersQuery) Role() ActorRole { return q.role }

// ActorID returns the actor whose view is requested.
func (q GetActorOrdersQuery) ActorID() string { return q.actorID }

func (q *GetActorOrdersQuery) setRole(role ActorRole) error {
	switch role {
	case ActorCustomer, ActorStore, ActorPicker, ActorPacker, ActorRider:
		q.role = role
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

func (q *GetActorOrdersQuery) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	q.actorID = actorID
	return nil
}
