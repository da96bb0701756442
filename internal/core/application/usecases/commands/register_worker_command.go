package commands

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/pkg/guard"
)

var ErrRegisterWorkerCommandIsNotConstructed = errors.New(
	"RegisterWorkerCommand must be created via NewRegisterWorkerCommand constructor",
)

// RegisterWorkerCommand adds a field worker to the assignment pool.
//
// Example:
//
//	cmd, err := NewRegisterWorkerCommand(kernel.NewUUID(),
//	    worker.Profile{Username: "ravi", FullName: "Ravi Kumar"},
//	    kernel.NewAddress("", "Pune", "MH", "411001"), nil, true)
type RegisterWorkerCommand struct { //nolint:recvcheck //using for validation
	workerID  kernel.UUID
	profile   worker.Profile
	address   kernel.Address
	location  *kernel.GeoPoint
	available bool

	guard guard.ConstructorGuard
}

func NewRegisterWorkerCommand(
	workerID kernel.UUID,
	profile worker.Profile,
	address kernel.Address,
	location *kernel.GeoPoint,
	available bool,
) (RegisterWorkerCommand, error) {
	cmd := RegisterWorkerCommand{
		address:   address,
		location:  location,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkerID(workerID),
		cmd.setProfile(profile),
	); err != nil {
		return RegisterWorkerCommand{}, err
	}

	return cmd, nil
}

func (c RegisterWorkerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWorkerCommandIsNotConstructed)
}

func (c RegisterWorkerCommand) WorkerID() kernel.UUID      { return c.workerID }
func (c RegisterWorkerCommand) Profile() worker.Profile    { return c.profile }
func (c RegisterWorkerCommand) Address() kernel.Address    { return c.address }
func (c RegisterWorkerCommand) Location() *kernel.GeoPoint { return c.location }
func (c RegisterWorkerCommand) Available() bool            { return c.available }

func (c *RegisterWorkerCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}

func (c *RegisterWorkerCommand) setProfile(profile worker.Profile) error {
	if profile.Username == "" {
		return worker.ErrUsernameIsRequired
	}

	c.profile = profile
	return nil
}
