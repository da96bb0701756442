// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
//
// The lifecycle handlers (assign, update status, mark reached, reschedule) lock
// the pickup request row and load the acting worker before applying the
// aggregate transition. An unknown worker fails with errs.ObjectNotFoundError.
package commands

import (
	"context"

	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/domain/services"
	"ewaste/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PickupRepoFactory provides access to pickup repository within a transaction.
	PickupRepoFactory interface {
		PickupRepository() ports.PickupRepository
	}

	// WorkerRepoFactory provides access to worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// PickupLogRepoFactory provides access to the audit trail within a transaction.
	PickupLogRepoFactory interface {
		PickupLogRepository() ports.PickupLogRepository
	}

	// PickupUoW manages transactions for pickup creation.
	PickupUoW interface {
		TxManager
		PickupRepoFactory
	}

	// PickupUoWFactory creates new pickup unit of work instances.
	PickupUoWFactory interface {
		Create() PickupUoW
	}

	// WorkerUoW manages transactions for worker-only operations.
	WorkerUoW interface {
		TxManager
		WorkerRepoFactory
	}

	// WorkerUoWFactory creates new worker unit of work instances.
	WorkerUoWFactory interface {
		Create() WorkerUoW
	}

	// LifecycleUoW writes a transition reported by a worker together with
	// its audit log. The reporting worker is read in the same transaction.
	LifecycleUoW interface {
		TxManager
		PickupRepoFactory
		WorkerRepoFactory
		PickupLogRepoFactory
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// UoW manages transactions across pickups, workers and the audit trail.
	// Used by assignment, which reads and locks the worker as well.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   request, err := uow.PickupRepository().GetForUpdate(ctx, requestID)
	//   w, err := uow.WorkerRepository().GetForUpdate(ctx, workerID)
	//   log, err := request.Assign(w.ID(), w.Username(), time.Now())
	//   // ... update request, append log
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		PickupRepoFactory
		WorkerRepoFactory
		PickupLogRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Planner chooses an assignee for a pickup. services.AssignmentPlanner implements it.
type Planner interface {
	Plan(ctx context.Context, request *pickup.Request, pool []*worker.Worker, maxAssignmentsPerWorker int) (services.Plan, error)
}
