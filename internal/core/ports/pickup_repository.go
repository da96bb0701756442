// Package ports defines the contracts between the pickup core and its
// infrastructure: repositories, the unit of work, geocoding and event delivery.
package ports

import (
	"context"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
)

// AssignmentScope selects which requests count towards a worker's load.
type AssignmentScope int

const (
	// AllAssignments counts every request ever bound to the worker, whatever its status.
	AllAssignments AssignmentScope = iota
	// OpenAssignments counts only requests that are not COMPLETED or CANCELLED.
	OpenAssignments
)

// PickupRepository defines the persistence contract for pickup requests.
type PickupRepository interface {
	// Add persists a new request.
	Add(ctx context.Context, request *pickup.Request) error

	// Update persists changes to an existing request.
	Update(ctx context.Context, request *pickup.Request) error

	// Get retrieves a request by id. Unknown ids yield errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*pickup.Request, error)

	// GetForUpdate retrieves a request and locks its row until the surrounding
	// transaction ends, so concurrent transitions on one request serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*pickup.Request, error)

	// GetAllAwaitingAssignment returns unassigned requests whose status is PENDING
	// or "Paid - Pending Pickup", oldest first.
	GetAllAwaitingAssignment(ctx context.Context) ([]*pickup.Request, error)

	// CountAssignments returns how many requests are bound to workerID.
	CountAssignments(ctx context.Context, workerID kernel.UUID, scope AssignmentScope) (int, error)
}

// PickupLogRepository is the append-only audit trail store.
type PickupLogRepository interface {
	// Append writes one log entry. Entries are never updated or removed.
	Append(ctx context.Context, log *pickup.Log) error
}
