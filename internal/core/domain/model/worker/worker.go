package worker

import (
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"
)

var (
	// ErrUsernameIsRequired is returned when a worker has no login name.
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
	// ErrWorkerIsNotConstructed is returned when using an improperly initialized Worker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")
)

// Profile holds the descriptive fields of a worker.
type Profile struct {
	Username string
	FullName string
	Phone    string
	Email    string
}

// Worker is a collector in the field. From the pickup engine's point of view
// it is read-only apart from the availability switch.
//
// Example usage:
//
//	w, err := worker.NewWorker(kernel.NewUUID(),
//	    worker.Profile{Username: "ravi"},
//	    kernel.NewAddress("", "Pune", "MH", "411001"), nil)
type Worker struct {
	id        kernel.UUID
	profile   Profile
	address   kernel.Address
	location  *kernel.GeoPoint
	available bool

	isConstructed bool
}

// NewWorker creates an available worker. location may be nil, in which case
// the worker is geocoded from its address when needed.
func NewWorker(id kernel.UUID, profile Profile, address kernel.Address, location *kernel.GeoPoint) (*Worker, error) {
	return RestoreWorker(id, profile, address, location, true)
}

// RestoreWorker rebuilds a persisted worker.
func RestoreWorker(
	id kernel.UUID,
	profile Profile,
	address kernel.Address,
	location *kernel.GeoPoint,
	available bool,
) (*Worker, error) {
	w := &Worker{
		address:       address,
		available:     available,
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setProfile(profile),
		w.setLocation(location),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

func (w *Worker) ID() kernel.UUID {
	return w.id
}

func (w *Worker) Profile() Profile {
	return w.profile
}

// Username is the name shown in assignment notes.
func (w *Worker) Username() string {
	return w.profile.Username
}

func (w *Worker) Address() kernel.Address {
	return w.address
}

func (w *Worker) IsAvailable() bool {
	return w.available
}

// SetAvailability switches the worker in or out of the assignment pool.
func (w *Worker) SetAvailability(available bool) {
	w.available = available
}

// Location returns the stored coordinates, if any.
func (w *Worker) Location() (kernel.GeoPoint, bool) {
	if w.location == nil {
		return kernel.GeoPoint{}, false
	}
	return *w.location, true
}

// GeoQueries returns geocoder inputs, full address first then pincode.
func (w *Worker) GeoQueries() []string {
	return w.address.GeoQueries()
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setProfile(profile Profile) error {
	if profile.Username == "" {
		return ErrUsernameIsRequired
	}
	w.profile = profile
	return nil
}

func (w *Worker) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	l := *location
	w.location = &l
	return nil
}
