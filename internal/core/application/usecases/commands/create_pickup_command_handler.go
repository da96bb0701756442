package commands

import (
	"context"
	"time"

	"ewaste/internal/core/domain/model/pickup"
)

// CreatePickupCommandHandler persists a new pickup request in PENDING (or
// "Paid - Pending Pickup") status.
type CreatePickupCommandHandler struct {
	uowFactory PickupUoWFactory
}

func NewCreatePickupCommandHandler(uowFactory PickupUoWFactory) CreatePickupCommandHandler {
	return CreatePickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates and stores the request and returns it.
func (h CreatePickupCommandHandler) Handle(ctx context.Context, cmd CreatePickupCommand) (*pickup.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	request, err := pickup.NewRequest(cmd.RequestID(), cmd.Details(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PickupRepository().Add(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
