package commands

import (
	"context"
	"time"

	"ewaste/internal/core/domain/model/pickup"
)

// UpdateStatusCommandHandler applies a status report and writes its audit log
// in one transaction. A log is written even when the status is unchanged.
type UpdateStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
}

func NewUpdateStatusCommandHandler(uowFactory LifecycleUoWFactory) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*pickup.Request, error) {
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

	if _, err = uow.WorkerRepository().Get(ctx, cmd.Update().WorkerID); err != nil {
		return nil, err
	}

	log, err := request.UpdateStatus(cmd.Update(), time.Now().UTC())
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
