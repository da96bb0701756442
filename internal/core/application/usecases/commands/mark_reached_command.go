package commands

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/guard"
)

var ErrMarkReachedCommandIsNotConstructed = errors.New(
	"MarkReachedCommand must be created via NewMarkReachedCommand constructor",
)

// MarkReachedCommand records the assigned worker's arrival at the pickup address.
type MarkReachedCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	workerID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkReachedCommand(requestID, workerID kernel.UUID) (MarkReachedCommand, error) {
	if err := errors.Join(requestID.Validate(), workerID.Validate()); err != nil {
		return MarkReachedCommand{}, err
	}

	return MarkReachedCommand{
		requestID: requestID,
		workerID:  workerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkReachedCommand) Validate() error {
	return c.guard.Validate(ErrMarkReachedCommandIsNotConstructed)
}

func (c MarkReachedCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c MarkReachedCommand) WorkerID() kernel.UUID {
	return c.workerID
}
