package commands

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/guard"
)

var ErrAssignWorkerCommandIsNotConstructed = errors.New(
	"AssignWorkerCommand must be created via NewAssignWorkerCommand constructor",
)

// AssignWorkerCommand binds a chosen worker to a pickup request, bypassing
// planning and capacity. It is the manual/admin override.
type AssignWorkerCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	workerID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignWorkerCommand(requestID, workerID kernel.UUID) (AssignWorkerCommand, error) {
	if err := errors.Join(requestID.Validate(), workerID.Validate()); err != nil {
		return AssignWorkerCommand{}, err
	}

	return AssignWorkerCommand{
		requestID: requestID,
		workerID:  workerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignWorkerCommand) Validate() error {
	return c.guard.Validate(ErrAssignWorkerCommandIsNotConstructed)
}

func (c AssignWorkerCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c AssignWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}
