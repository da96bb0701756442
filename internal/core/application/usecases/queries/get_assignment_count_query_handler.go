package queries

import (
	"context"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAssignmentCountQueryHandler counts a worker's requests with the scope of
// the given counter. Unknown workers are reported as not found.
type GetAssignmentCountQueryHandler struct {
	db      *gorm.DB
	counter AssignmentCounter
}

func NewGetAssignmentCountQueryHandler(db *gorm.DB, counter AssignmentCounter) GetAssignmentCountQueryHandler {
	return GetAssignmentCountQueryHandler{db: db, counter: counter}
}

func (h GetAssignmentCountQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentCountQuery,
) (GetAssignmentCountQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAssignmentCountQueryResponse{}, err
	}

	n, err := countFor(ctx, h.db, h.counter, query.WorkerID())
	if err != nil {
		return GetAssignmentCountQueryResponse{}, err
	}

	return GetAssignmentCountQueryResponse{WorkerID: query.WorkerID(), Count: n}, nil
}

func countFor(ctx context.Context, db *gorm.DB, counter AssignmentCounter, id kernel.UUID) (int, error) {
	exists, err := workerExists(ctx, db, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, errs.NewObjectNotFoundError("worker", id)
	}

	counts, err := counter.CountAssignments(ctx, []kernel.UUID{id})
	if err != nil {
		return 0, err
	}
	return counts[id], nil
}
