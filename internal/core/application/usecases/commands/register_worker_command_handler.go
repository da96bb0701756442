package commands

import (
	"context"

	"ewaste/internal/core/domain/model/worker"
)

// RegisterWorkerCommandHandler stores a new worker. A taken username is
// reported by the repository as a conflict.
type RegisterWorkerCommandHandler struct {
	uowFactory WorkerUoWFactory
}

func NewRegisterWorkerCommandHandler(uowFactory WorkerUoWFactory) RegisterWorkerCommandHandler {
	return RegisterWorkerCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterWorkerCommandHandler) Handle(ctx context.Context, cmd RegisterWorkerCommand) (*worker.Worker, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	w, err := worker.NewWorker(cmd.WorkerID(), cmd.Profile(), cmd.Address(), cmd.Location())
	if err != nil {
		return nil, err
	}
	w.SetAvailability(cmd.Available())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WorkerRepository().Add(ctx, w); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return w, nil
}
