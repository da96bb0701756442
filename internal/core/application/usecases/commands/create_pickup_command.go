package commands

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/pkg/guard"
)

var ErrCreatePickupCommandIsNotConstructed = errors.New(
	"CreatePickupCommand must be created via NewCreatePickupCommand constructor",
)

// CreatePickupCommand registers a new pickup request. The request is always
// created unassigned; assignment is a separate step.
type CreatePickupCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	details   pickup.Details

	guard guard.ConstructorGuard
}

// NewCreatePickupCommand validates the identifiers up front. Address and status
// rules are enforced by pickup.NewRequest when the command is handled.
func NewCreatePickupCommand(requestID kernel.UUID, details pickup.Details) (CreatePickupCommand, error) {
	cmd := CreatePickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setDetails(details),
	); err != nil {
		return CreatePickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePickupCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupCommandIsNotConstructed)
}

func (c CreatePickupCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c CreatePickupCommand) Details() pickup.Details {
	return c.details
}

func (c *CreatePickupCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.requestID = id
	return nil
}

func (c *CreatePickupCommand) setDetails(details pickup.Details) error {
	if err := details.RequesterID.Validate(); err != nil {
		return pickup.ErrRequesterIsRequired
	}

	c.details = details
	return nil
}
