package commands

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"
	"ewaste/internal/pkg/guard"
)

var ErrAutoAssignCommandIsNotConstructed = errors.New(
	"AutoAssignCommand must be created via NewAutoAssignCommand constructor",
)

// AutoAssignCommand plans and commits an assignment for one waiting request.
// Excluded workers are left out of the pool, which lets a caller re-plan after
// a worker filled up between planning and commit.
type AutoAssignCommand struct { //nolint:recvcheck //using for validation
	requestID      kernel.UUID
	maxAssignments int
	excluded       []kernel.UUID

	guard guard.ConstructorGuard
}

func NewAutoAssignCommand(requestID kernel.UUID, maxAssignments int, excluded ...kernel.UUID) (AutoAssignCommand, error) {
	if err := requestID.Validate(); err != nil {
		return AutoAssignCommand{}, err
	}
	if maxAssignments <= 0 {
		return AutoAssignCommand{}, errs.NewValueIsOutOfRangeError("max assignments per worker", maxAssignments, 1, "unbounded")
	}

	return AutoAssignCommand{
		requestID:      requestID,
		maxAssignments: maxAssignments,
		excluded:       append([]kernel.UUID(nil), excluded...),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c AutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCommandIsNotConstructed)
}

func (c AutoAssignCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c AutoAssignCommand) MaxAssignments() int {
	return c.maxAssignments
}

// IsExcluded reports whether id must not be planned for.
func (c AutoAssignCommand) IsExcluded(id kernel.UUID) bool {
	for _, e := range c.excluded {
		if e.IsEqual(id) {
			return true
		}
	}
	return false
}
