package commands

import (
	"context"

	"ewaste/internal/core/domain/model/pickup"
)

// MarkReachedCommandHandler sets the tracking status to REACHED. Only the
// tracking sub-state changes, so no audit log is written.
type MarkReachedCommandHandler struct {
	uowFactory LifecycleUoWFactory
}

func NewMarkReachedCommandHandler(uowFactory LifecycleUoWFactory) MarkReachedCommandHandler {
	return MarkReachedCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MarkReachedCommandHandler) Handle(ctx context.Context, cmd MarkReachedCommand) (*pickup.Request, error) {
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

	if err = request.MarkReached(cmd.WorkerID()); err != nil {
		return nil, err
	}

	if err = pickupRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
