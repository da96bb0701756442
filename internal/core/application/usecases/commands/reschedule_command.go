package commands

import (
	"errors"
	"strings"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/pkg/guard"
)

var ErrRescheduleCommandIsNotConstructed = errors.New(
	"RescheduleCommand must be created via NewRescheduleCommand constructor",
)

// RescheduleCommand moves a pickup to another day on behalf of its assigned worker.
type RescheduleCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	workerID  kernel.UUID
	newDate   string
	reason    string

	guard guard.ConstructorGuard
}

// NewRescheduleCommand expects newDate in pickup.DateLayout and a non-empty reason.
func NewRescheduleCommand(requestID, workerID kernel.UUID, newDate, reason string) (RescheduleCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if reason == "" {
		reasonErr = pickup.ErrRescheduleReasonIsRequired
	}
	if err := errors.Join(requestID.Validate(), workerID.Validate(), reasonErr); err != nil {
		return RescheduleCommand{}, err
	}

	return RescheduleCommand{
		requestID: requestID,
		workerID:  workerID,
		newDate:   strings.TrimSpace(newDate),
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RescheduleCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleCommandIsNotConstructed)
}

func (c RescheduleCommand) RequestID() kernel.UUID { return c.requestID }
func (c RescheduleCommand) WorkerID() kernel.UUID  { return c.workerID }
func (c RescheduleCommand) NewDate() string        { return c.newDate }
func (c RescheduleCommand) Reason() string         { return c.reason }
