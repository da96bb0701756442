package queries

import (
	"errors"

	"ewaste/internal/pkg/guard"
)

var ErrGetUnassignedPickupsQueryIsNotConstructed = errors.New(
	"GetUnassignedPickupsQuery must be created via NewGetUnassignedPickupsQuery constructor",
)

// GetUnassignedPickupsQuery lists the requests waiting for a worker: no
// assignee and status PENDING or "Paid - Pending Pickup".
type GetUnassignedPickupsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUnassignedPickupsQuery() GetUnassignedPickupsQuery {
	return GetUnassignedPickupsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUnassignedPickupsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedPickupsQueryIsNotConstructed)
}
