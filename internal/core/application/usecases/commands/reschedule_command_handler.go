package commands

import (
	"context"
	"time"

	"ewaste/internal/core/domain/model/pickup"
)

// RescheduleCommandHandler sets the new date and reason, moves the request to
// RESCHEDULED and logs the change in one transaction.
type RescheduleCommandHandler struct {
	uowFactory LifecycleUoWFactory
}

func NewRescheduleCommandHandler(uowFactory LifecycleUoWFactory) RescheduleCommandHandler {
	return RescheduleCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RescheduleCommandHandler) Handle(ctx context.Context, cmd RescheduleCommand) (*pickup.Request, error) {
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

	if _, err = uow.WorkerRepository().Get(ctx, cmd.WorkerID()); err != nil {
		return nil, err
	}

	log, err := request.Reschedule(cmd.WorkerID(), cmd.NewDate(), cmd.Reason(), time.Now().UTC())
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
