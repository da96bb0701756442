package pickup

import (
	"fmt"
	"strings"

	"ewaste/internal/pkg/errs"
)

// Status is the business status of a pickup request. Values are stored verbatim,
// including the payment flow literal with spaces.
//
// State transitions:
//
//	PENDING ─────────┬──> ASSIGNED ──┬──> COMPLETED
//	Paid - Pending ──┘               ├──> CANCELLED
//	                                 └──> RESCHEDULED
//
// COMPLETED and CANCELLED are sticky for the assignment pathway: assigning a
// worker to such a request does not move the status back to ASSIGNED.
type Status string

const (
	Pending           Status = "PENDING"
	Assigned          Status = "ASSIGNED"
	Completed         Status = "COMPLETED"
	Cancelled         Status = "CANCELLED"
	Rescheduled       Status = "RESCHEDULED"
	PaidPendingPickup Status = "Paid - Pending Pickup"
)

// updatableStatuses are the literals a worker or admin may set through a
// status update. RESCHEDULED is reachable only through Request.Reschedule.
var updatableStatuses = []Status{Pending, Assigned, Completed, Cancelled, PaidPendingPickup}

// AwaitingAssignment lists the statuses eligible for automatic assignment.
var AwaitingAssignment = []Status{Pending, PaidPendingPickup}

// ParseStatus converts user input into a Status accepted by status updates.
// Matching is exact apart from surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.TrimSpace(s))
	for _, allowed := range updatableStatuses {
		if status == allowed {
			return status, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate accepts every status a persisted request may hold.
func (s Status) Validate() error {
	if s == Rescheduled {
		return nil
	}
	if _, err := ParseStatus(string(s)); err != nil {
		return err
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsSticky reports whether assignment must leave the status untouched.
func (s Status) IsSticky() bool {
	return s == Completed || s == Cancelled
}

// IsAwaitingAssignment reports whether the status is equivalent to PENDING
// for assignment eligibility.
func (s Status) IsAwaitingAssignment() bool {
	return s == Pending || s == PaidPendingPickup
}

// IsOpen reports whether a request in this status still occupies its worker.
func (s Status) IsOpen() bool {
	return !s.IsSticky()
}
