// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models for reporting and for the worker-facing views;
// they never change state.
package queries

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/guard"
)

var ErrGetAssignmentCountQueryIsNotConstructed = errors.New(
	"GetAssignmentCountQuery must be created via NewGetAssignmentCountQuery constructor",
)

// GetAssignmentCountQuery asks how many pickup requests are bound to a worker.
//
// Example:
//
//	query, err := NewGetAssignmentCountQuery(workerID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetAssignmentCountQuery struct {
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAssignmentCountQuery(workerID kernel.UUID) (GetAssignmentCountQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetAssignmentCountQuery{}, err
	}
	return GetAssignmentCountQuery{workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAssignmentCountQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentCountQueryIsNotConstructed)
}

func (q GetAssignmentCountQuery) WorkerID() kernel.UUID {
	return q.workerID
}

type GetAssignmentCountQueryResponse struct {
	WorkerID kernel.UUID
	Count    int
}
