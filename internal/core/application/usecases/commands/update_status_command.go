package commands

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand reports a new business status for a pickup request.
// The status literal itself is checked by the aggregate so that an unknown
// value surfaces as a validation error from Handle.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	update    pickup.StatusUpdate

	guard guard.ConstructorGuard
}

func NewUpdateStatusCommand(requestID kernel.UUID, update pickup.StatusUpdate) (UpdateStatusCommand, error) {
	if err := errors.Join(requestID.Validate(), update.WorkerID.Validate()); err != nil {
		return UpdateStatusCommand{}, err
	}

	return UpdateStatusCommand{
		requestID: requestID,
		update:    update,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

func (c UpdateStatusCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c UpdateStatusCommand) Update() pickup.StatusUpdate {
	return c.update
}
