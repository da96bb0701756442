package commands

import (
	"context"
	"time"

	"ewaste/internal/core/domain/model/pickup"
)

// AssignWorkerCommandHandler commits a manual assignment.
//
// The request row is locked for the whole transaction, so of two concurrent
// assignments of an unassigned request exactly one succeeds and the other sees
// the first worker and fails with errs.ConflictError. Assigning the current
// assignee again succeeds and is logged.
type AssignWorkerCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignWorkerCommandHandler(uowFactory UoWFactory) AssignWorkerCommandHandler {
	return AssignWorkerCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AssignWorkerCommandHandler) Handle(ctx context.Context, cmd AssignWorkerCommand) (*pickup.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pickupRepo := uow.PickupRepository()

	request, err := pickupRepo.GetForUpdate(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	w, err := uow.WorkerRepository().Get(ctx, cmd.WorkerID())
	if err != nil {
		return nil, err
	}

	log, err := request.Assign(w.ID(), w.Username(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = pickupRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.PickupLogRepository().Append(ctx, log); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
