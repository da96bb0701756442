package pickup

import (
	"errors"
	"fmt"
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"
)

// DateLayout is the calendar date format of scheduled pickups.
const DateLayout = "2006-01-02"

var (
	// ErrRequestIsNotConstructed is returned when a Request was not built through
	// NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
	// ErrRequesterIsRequired is returned when a request has no submitting user.
	ErrRequesterIsRequired = errs.NewValueIsRequiredError("requester id")
	// ErrRescheduleReasonIsRequired is returned when a reschedule gives no reason.
	ErrRescheduleReasonIsRequired = errs.NewValueIsRequiredError("reschedule reason")
)

// Contact is how the requester can be reached on the pickup day.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Details are the submission fields of a new pickup request.
type Details struct {
	RequesterID kernel.UUID
	Contact     Contact
	Address     kernel.Address
	Location    *kernel.GeoPoint
	Date        string
	TimeSlot    string
	WasteType   string
	Status      Status
}

// Items describes what is being collected. Nil fields mean "not provided".
type Items struct {
	Brand          *string
	Details        *string
	EstimatedValue *float64
}

// State is the full persisted form of a Request, used to restore it.
type State struct {
	ID               kernel.UUID
	Details          Details
	TrackingStatus   TrackingStatus
	AssignedWorkerID *kernel.UUID
	WeightKg         *float64
	Brand            string
	ItemDetails      string
	EstimatedValue   *float64
	RescheduleReason string
	CreatedAt        time.Time
}

// StatusUpdate is a worker or admin report of a new business status.
type StatusUpdate struct {
	WorkerID    kernel.UUID
	Status      Status
	CollectedKg *float64
	Notes       string
	Items       Items
}

// Request is the pickup request aggregate root. It is the only writer of the
// assigned worker and both status fields.
//
// Invariants:
//   - At most one worker is assigned at a time; assigning a different worker is a conflict
//   - COMPLETED and CANCELLED are not reverted by assignment
//   - Collected weight is present only while the status is COMPLETED
//   - Worker actions (status update, reached, reschedule) are restricted to the assignee
type Request struct {
	id               kernel.UUID
	requesterID      kernel.UUID
	contact          Contact
	address          kernel.Address
	location         *kernel.GeoPoint
	date             string
	timeSlot         string
	wasteType        string
	status           Status
	trackingStatus   TrackingStatus
	assignedWorkerID *kernel.UUID
	weightKg         *float64
	brand            string
	itemDetails      string
	estimatedValue   *float64
	rescheduleReason string
	createdAt        time.Time

	isConstructed bool
}

// NewRequest creates an unassigned request. An empty status defaults to PENDING;
// only PENDING and "Paid - Pending Pickup" are accepted as initial statuses.
//
// Example:
//
//	req, err := pickup.NewRequest(kernel.NewUUID(), pickup.Details{
//	    RequesterID: userID,
//	    Address:     kernel.NewAddress("12 MG Road", "Pune", "MH", "411001"),
//	    Date:        "2026-10-20",
//	    WasteType:   "Laptop",
//	}, time.Now())
func NewRequest(id kernel.UUID, details Details, createdAt time.Time) (*Request, error) {
	if details.Status == "" {
		details.Status = Pending
	}
	if !details.Status.IsAwaitingAssignment() {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("a new request cannot start as %q", details.Status))
	}

	return RestoreRequest(State{
		ID:        id,
		Details:   details,
		CreatedAt: createdAt,
	})
}

// RestoreRequest rebuilds a persisted request.
func RestoreRequest(s State) (*Request, error) {
	r := &Request{
		contact:          s.Details.Contact,
		address:          s.Details.Address,
		timeSlot:         s.Details.TimeSlot,
		wasteType:        s.Details.WasteType,
		weightKg:         copyFloat(s.WeightKg),
		brand:            s.Brand,
		itemDetails:      s.ItemDetails,
		estimatedValue:   copyFloat(s.EstimatedValue),
		rescheduleReason: s.RescheduleReason,
		createdAt:        s.CreatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		r.setID(s.ID),
		r.setRequester(s.Details.RequesterID),
		r.setLocation(s.Details.Location),
		r.setDate(s.Details.Date),
		r.setStatus(s.Details.Status),
		r.setTrackingStatus(s.TrackingStatus),
		r.setAssignedWorker(s.AssignedWorkerID),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Request) ID() kernel.UUID                { return r.id }
func (r *Request) RequesterID() kernel.UUID       { return r.requesterID }
func (r *Request) Contact() Contact               { return r.contact }
func (r *Request) Address() kernel.Address        { return r.address }
func (r *Request) Date() string                   { return r.date }
func (r *Request) TimeSlot() string               { return r.timeSlot }
func (r *Request) WasteType() string              { return r.wasteType }
func (r *Request) Status() Status                 { return r.status }
func (r *Request) TrackingStatus() TrackingStatus { return r.trackingStatus }
func (r *Request) WeightKg() *float64             { return copyFloat(r.weightKg) }
func (r *Request) Brand() string                  { return r.brand }
func (r *Request) ItemDetails() string            { return r.itemDetails }
func (r *Request) EstimatedValue() *float64       { return copyFloat(r.estimatedValue) }
func (r *Request) RescheduleReason() string       { return r.rescheduleReason }
func (r *Request) CreatedAt() time.Time           { return r.createdAt }

// AssignedWorker returns the assignee or nil.
func (r *Request) AssignedWorker() *kernel.UUID {
	if r.assignedWorkerID == nil {
		return nil
	}
	id := *r.assignedWorkerID
	return &id
}

// IsAssigned reports whether a worker is bound to the request.
func (r *Request) IsAssigned() bool {
	return r.assignedWorkerID != nil
}

// IsAssignedTo reports whether workerID is the current assignee.
func (r *Request) IsAssignedTo(workerID kernel.UUID) bool {
	return r.assignedWorkerID != nil && r.assignedWorkerID.IsEqual(workerID)
}

// Location returns the stored coordinates, if any.
func (r *Request) Location() (kernel.GeoPoint, bool) {
	if r.location == nil {
		return kernel.GeoPoint{}, false
	}
	return *r.location, true
}

// GeoQueries returns geocoder inputs for a request without stored coordinates.
func (r *Request) GeoQueries() []string {
	return r.address.GeoQueries()
}

// HasAddress reports whether the request carries any location information.
func (r *Request) HasAddress() bool {
	return r.location != nil || !r.address.IsEmpty()
}

// IsAwaitingAssignment reports whether bulk assignment should pick the request up.
func (r *Request) IsAwaitingAssignment() bool {
	return r.assignedWorkerID == nil && r.status.IsAwaitingAssignment()
}

// Assign binds workerID to the request.
//
// Assigning the current assignee again is allowed and logged. A different worker
// is rejected with a ConflictError and the request is left unchanged. The status
// becomes ASSIGNED unless it is COMPLETED or CANCELLED.
func (r *Request) Assign(workerID kernel.UUID, workerName string, at time.Time) (*Log, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}
	if r.assignedWorkerID != nil && !r.assignedWorkerID.IsEqual(workerID) {
		return nil, errs.NewConflictError("pickup request",
			fmt.Sprintf("%s is already assigned to worker %s", r.id, r.assignedWorkerID))
	}

	oldStatus := r.status
	r.assignedWorkerID = &workerID
	if !r.status.IsSticky() {
		r.status = Assigned
		r.trackingStatus = TrackingAssigned
	}

	return NewLog(r.id, workerID, oldStatus, r.status, at, nil,
		fmt.Sprintf("Pickup assigned to worker: %s", workerName))
}

// UpdateStatus applies a status report from the assigned worker. Reports on
// an unassigned request or from another worker are a ConflictError.
//
// Moving to COMPLETED stores the collected weight; moving away from COMPLETED
// clears it. Item fields are overwritten only when provided. A log is written
// even when the status does not change.
func (r *Request) UpdateStatus(u StatusUpdate, at time.Time) (*Log, error) {
	if err := r.ensureAssignee(u.WorkerID); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(u.Status)); err != nil {
		return nil, err
	}
	if u.CollectedKg != nil && *u.CollectedKg < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("collected weight",
			fmt.Errorf("%v is negative", *u.CollectedKg))
	}

	oldStatus := r.status
	switch {
	case u.Status == Completed:
		r.weightKg = copyFloat(u.CollectedKg)
	case oldStatus == Completed:
		r.weightKg = nil
	}
	r.status = u.Status
	if u.Status.IsSticky() {
		r.trackingStatus = TrackingDone
	}

	if u.Items.Brand != nil {
		r.brand = *u.Items.Brand
	}
	if u.Items.Details != nil {
		r.itemDetails = *u.Items.Details
	}
	if u.Items.EstimatedValue != nil {
		r.estimatedValue = copyFloat(u.Items.EstimatedValue)
	}

	return NewLog(r.id, u.WorkerID, oldStatus, r.status, at, u.CollectedKg, u.Notes)
}

// MarkReached records that the assigned worker arrived at the address.
// It changes only the tracking status and produces no log.
func (r *Request) MarkReached(workerID kernel.UUID) error {
	if err := r.ensureAssignee(workerID); err != nil {
		return err
	}
	r.trackingStatus = TrackingReached
	return nil
}

// Reschedule moves the pickup to newDate on behalf of the assigned worker.
func (r *Request) Reschedule(workerID kernel.UUID, newDate, reason string, at time.Time) (*Log, error) {
	if err := r.ensureAssignee(workerID); err != nil {
		return nil, err
	}
	if _, err := time.Parse(DateLayout, newDate); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	if reason == "" {
		return nil, ErrRescheduleReasonIsRequired
	}

	oldStatus, oldDate := r.status, r.date
	r.date = newDate
	r.rescheduleReason = reason
	r.status = Rescheduled

	return NewLog(r.id, workerID, oldStatus, r.status, at, nil,
		fmt.Sprintf("Rescheduled from %s to %s. Reason: %s", oldDate, newDate, reason))
}

func (r *Request) ensureAssignee(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if !r.IsAssignedTo(workerID) {
		return errs.NewConflictError("pickup request",
			fmt.Sprintf("worker %s is not assigned to %s", workerID, r.id))
	}
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setRequester(id kernel.UUID) error {
	if id.Validate() != nil {
		return ErrRequesterIsRequired
	}
	r.requesterID = id
	return nil
}

func (r *Request) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	l := *location
	r.location = &l
	return nil
}

func (r *Request) setDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	r.date = date
	return nil
}

func (r *Request) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Request) setTrackingStatus(status TrackingStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.trackingStatus = status
	return nil
}

func (r *Request) setAssignedWorker(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	workerID := *id
	r.assignedWorkerID = &workerID
	return nil
}
