package queries

import (
	"context"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetWorkerAvailabilityQueryHandler struct {
	db      *gorm.DB
	counter AssignmentCounter
}

func NewGetWorkerAvailabilityQueryHandler(db *gorm.DB, counter AssignmentCounter) GetWorkerAvailabilityQueryHandler {
	return GetWorkerAvailabilityQueryHandler{db: db, counter: counter}
}

// Handle reports whether the worker holds fewer requests than the cap.
func (h GetWorkerAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetWorkerAvailabilityQuery,
) (GetWorkerAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkerAvailabilityQueryResponse{}, err
	}

	var onDuty []bool
	err := h.db.WithContext(ctx).
		Raw(`SELECT available FROM workers WHERE id = ?`, query.WorkerID().Bytes()).
		Scan(&onDuty).Error
	if err != nil {
		return GetWorkerAvailabilityQueryResponse{}, err
	}
	if len(onDuty) == 0 {
		return GetWorkerAvailabilityQueryResponse{}, errs.NewObjectNotFoundError("worker", query.WorkerID())
	}

	counts, err := h.counter.CountAssignments(ctx, []kernel.UUID{query.WorkerID()})
	if err != nil {
		return GetWorkerAvailabilityQueryResponse{}, err
	}
	n := counts[query.WorkerID()]

	return GetWorkerAvailabilityQueryResponse{
		WorkerID:       query.WorkerID(),
		Assignments:    n,
		MaxAssignments: query.MaxAssignments(),
		Available:      n < query.MaxAssignments(),
		OnDuty:         onDuty[0],
	}, nil
}
