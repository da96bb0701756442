package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/domain/services"
	"ewaste/internal/core/ports"
	"ewaste/internal/pkg/errs"
)

// ErrWorkerUnavailable is returned when the planned worker was switched off
// between planning and commit.
var ErrWorkerUnavailable = errors.New("worker is no longer available")

// AutoAssignResult is the outcome of an automatic assignment attempt.
// Request is the stored state after the attempt.
type AutoAssignResult struct {
	Request *pickup.Request
	Plan    services.Plan
}

// Assigned reports whether a worker was committed.
func (r AutoAssignResult) Assigned() bool {
	return r.Plan.Found()
}

// AutoAssignCommandHandler plans outside the transaction and then commits
// the choice under row locks.
//
// Commit protocol:
//  1. lock the request and check it is still waiting for assignment
//  2. lock the chosen worker and check it is still available
//  3. unless the plan already fell back to the full pool, recount the worker's
//     assignments and fail with services.ErrWorkerAtCapacity at the cap
//  4. assign, update the request and append the log
//
// Step 3 runs while holding the worker lock, so concurrent commits for one
// worker cannot together push it past the cap.
type AutoAssignCommandHandler struct {
	uowFactory UoWFactory
	planner    Planner
	scope      ports.AssignmentScope
}

func NewAutoAssignCommandHandler(uowFactory UoWFactory, planner Planner, scope ports.AssignmentScope) AutoAssignCommandHandler {
	return AutoAssignCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		scope:      scope,
	}
}

// Handle returns a result without error when planning finds nobody; the
// request then stays unassigned. When the planned worker turns out to be full
// or switched off, the returned result still carries the plan so the caller
// can exclude that worker and try again.
func (h AutoAssignCommandHandler) Handle(ctx context.Context, cmd AutoAssignCommand) (AutoAssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return AutoAssignResult{}, err
	}

	uow := h.uowFactory.Create()

	request, err := uow.PickupRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return AutoAssignResult{}, err
	}
	if err = ensureAwaitingAssignment(request); err != nil {
		return AutoAssignResult{}, err
	}

	available, err := uow.WorkerRepository().GetAllAvailable(ctx)
	if err != nil {
		return AutoAssignResult{}, err
	}
	pool := make([]*worker.Worker, 0, len(available))
	for _, w := range available {
		if !cmd.IsExcluded(w.ID()) {
			pool = append(pool, w)
		}
	}

	plan, err := h.planner.Plan(ctx, request, pool, cmd.MaxAssignments())
	if err != nil {
		return AutoAssignResult{}, err
	}
	if !plan.Found() {
		return AutoAssignResult{Request: request, Plan: plan}, nil
	}

	if err = uow.Begin(ctx); err != nil {
		return AutoAssignResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pickupRepo := uow.PickupRepository()

	request, err = pickupRepo.GetForUpdate(ctx, cmd.RequestID())
	if err != nil {
		return AutoAssignResult{}, err
	}
	if err = ensureAwaitingAssignment(request); err != nil {
		return AutoAssignResult{}, err
	}

	w, err := uow.WorkerRepository().GetForUpdate(ctx, plan.Worker.ID())
	if err != nil {
		return AutoAssignResult{}, err
	}
	if !w.IsAvailable() {
		return AutoAssignResult{Plan: plan}, fmt.Errorf("%w: %s", ErrWorkerUnavailable, w.ID())
	}

	if !plan.Fallback {
		n, countErr := pickupRepo.CountAssignments(ctx, w.ID(), h.scope)
		if countErr != nil {
			return AutoAssignResult{}, countErr
		}
		if n >= cmd.MaxAssignments() {
			return AutoAssignResult{Plan: plan}, fmt.Errorf("%w: worker %s has %d assignments",
				services.ErrWorkerAtCapacity, w.ID(), n)
		}
	}

	log, err := request.Assign(w.ID(), w.Username(), time.Now().UTC())
	if err != nil {
		return AutoAssignResult{}, err
	}

	if err = pickupRepo.Update(ctx, request); err != nil {
		return AutoAssignResult{}, err
	}

	if err = uow.PickupLogRepository().Append(ctx, log); err != nil {
		return AutoAssignResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AutoAssignResult{}, err
	}

	return AutoAssignResult{Request: request, Plan: plan}, nil
}

func ensureAwaitingAssignment(request *pickup.Request) error {
	if request.IsAwaitingAssignment() {
		return nil
	}
	return errs.NewConflictError("pickup request",
		fmt.Sprintf("%s is not awaiting assignment (status %s)", request.ID(), request.Status()))
}
