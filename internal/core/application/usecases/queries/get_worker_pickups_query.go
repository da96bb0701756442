package queries

import (
	"errors"
	"fmt"
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"
	"ewaste/internal/pkg/guard"
)

// PickupScope selects which of a worker's pickups are listed.
type PickupScope string

const (
	// ScopeAll lists every pickup assigned to the worker.
	ScopeAll PickupScope = "all"
	// ScopeToday lists today's pickups still in ASSIGNED.
	ScopeToday PickupScope = "today"
	// ScopeMissed lists pickups dated before today that were never closed
	// or rescheduled.
	ScopeMissed PickupScope = "missed"
)

// ParsePickupScope maps user input to a scope. Empty input means ScopeAll.
func ParsePickupScope(s string) (PickupScope, error) {
	switch PickupScope(s) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeToday, ScopeMissed:
		return PickupScope(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%q is not one of all, today, missed", s))
}

var ErrGetWorkerPickupsQueryIsNotConstructed = errors.New(
	"GetWorkerPickupsQuery must be created via NewGetWorkerPickupsQuery constructor",
)

// GetWorkerPickupsQuery lists the pickups assigned to a worker. today is the
// calendar day the today and missed scopes are measured against.
type GetWorkerPickupsQuery struct {
	workerID kernel.UUID
	scope    PickupScope
	today    time.Time

	guard guard.ConstructorGuard
}

func NewGetWorkerPickupsQuery(workerID kernel.UUID, scope PickupScope, today time.Time) (GetWorkerPickupsQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetWorkerPickupsQuery{}, err
	}
	if _, err := ParsePickupScope(string(scope)); err != nil {
		return GetWorkerPickupsQuery{}, err
	}
	if scope == "" {
		scope = ScopeAll
	}

	return GetWorkerPickupsQuery{
		workerID: workerID,
		scope:    scope,
		today:    today,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetWorkerPickupsQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerPickupsQueryIsNotConstructed)
}

func (q GetWorkerPickupsQuery) WorkerID() kernel.UUID {
	return q.workerID
}

func (q GetWorkerPickupsQuery) Scope() PickupScope {
	return q.scope
}

func (q GetWorkerPickupsQuery) Today() time.Time {
	return q.today
}
