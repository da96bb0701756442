package ports

import (
	"context"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for workers.
type WorkerRepository interface {
	Add(ctx context.Context, worker *worker.Worker) error
	Update(ctx context.Context, worker *worker.Worker) error

	// Get retrieves a worker by id. Unknown ids yield errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetForUpdate retrieves a worker and locks its row. Assignment commits take
	// this lock so the capacity recount cannot race another assignment.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetAllAvailable returns workers whose availability flag is set, in
	// registration order. This is the assignment pool.
	GetAllAvailable(ctx context.Context) ([]*worker.Worker, error)

	// GetAll returns every worker in registration order.
	GetAll(ctx context.Context) ([]*worker.Worker, error)
}

// AssignmentCounter reports the current load of a set of workers.
// Workers without assignments may be absent from the result.
type AssignmentCounter interface {
	CountAssignments(ctx context.Context, workerIDs []kernel.UUID) (map[kernel.UUID]int, error)
}
