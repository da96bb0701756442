package pickup

import (
	"fmt"

	"ewaste/internal/pkg/errs"
)

// TrackingStatus is the fine-grained progress a worker reports in the field.
// It is independent of Status; the zero value means no tracking yet.
type TrackingStatus string

const (
	TrackingNone     TrackingStatus = ""
	TrackingAssigned TrackingStatus = "ASSIGNED"
	TrackingReached  TrackingStatus = "REACHED"
	TrackingDone     TrackingStatus = "DONE"
)

func (t TrackingStatus) Validate() error {
	switch t {
	case TrackingNone, TrackingAssigned, TrackingReached, TrackingDone:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("tracking status", fmt.Errorf("%q is not a valid tracking status", string(t)))
	}
}

func (t TrackingStatus) String() string {
	return string(t)
}
