package queries

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"
	"ewaste/internal/pkg/guard"
)

var ErrGetWorkerAvailabilityQueryIsNotConstructed = errors.New(
	"GetWorkerAvailabilityQuery must be created via NewGetWorkerAvailabilityQuery constructor",
)

// GetWorkerAvailabilityQuery asks whether a worker is below an assignment cap.
type GetWorkerAvailabilityQuery struct {
	workerID       kernel.UUID
	maxAssignments int

	guard guard.ConstructorGuard
}

func NewGetWorkerAvailabilityQuery(workerID kernel.UUID, maxAssignments int) (GetWorkerAvailabilityQuery, error) {
	var capErr error
	if maxAssignments <= 0 {
		capErr = errs.NewValueIsOutOfRangeError("max assignments", maxAssignments, 1, "unbounded")
	}
	if err := errors.Join(workerID.Validate(), capErr); err != nil {
		return GetWorkerAvailabilityQuery{}, err
	}

	return GetWorkerAvailabilityQuery{
		workerID:       workerID,
		maxAssignments: maxAssignments,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetWorkerAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerAvailabilityQueryIsNotConstructed)
}

func (q GetWorkerAvailabilityQuery) WorkerID() kernel.UUID {
	return q.workerID
}

func (q GetWorkerAvailabilityQuery) MaxAssignments() int {
	return q.maxAssignments
}

// GetWorkerAvailabilityQueryResponse reports a worker's load against the cap.
// Available considers the count only; the worker's own on-duty flag is
// reported separately as OnDuty.
type GetWorkerAvailabilityQueryResponse struct {
	WorkerID       kernel.UUID
	Assignments    int
	MaxAssignments int
	Available      bool
	OnDuty         bool
}
