package pickup

import (
	"errors"
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"
)

// ErrLogIsNotConstructed is returned when a Log was not built through NewLog or RestoreLog.
var ErrLogIsNotConstructed = errors.New("Log must be created via NewLog constructor")

// Log is one immutable audit record of a pickup request transition.
type Log struct {
	id          kernel.UUID
	requestID   kernel.UUID
	workerID    kernel.UUID
	oldStatus   Status
	newStatus   Status
	timestamp   time.Time
	collectedKg *float64
	notes       string

	isConstructed bool
}

// NewLog creates an audit record stamped with at.
func NewLog(
	requestID kernel.UUID,
	workerID kernel.UUID,
	oldStatus, newStatus Status,
	at time.Time,
	collectedKg *float64,
	notes string,
) (*Log, error) {
	return RestoreLog(kernel.NewUUID(), requestID, workerID, oldStatus, newStatus, at, collectedKg, notes)
}

// RestoreLog rebuilds a persisted audit record.
func RestoreLog(
	id kernel.UUID,
	requestID kernel.UUID,
	workerID kernel.UUID,
	oldStatus, newStatus Status,
	at time.Time,
	collectedKg *float64,
	notes string,
) (*Log, error) {
	if err := errors.Join(id.Validate(), requestID.Validate(), workerID.Validate()); err != nil {
		return nil, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}
	if oldStatus != "" {
		if err := oldStatus.Validate(); err != nil {
			return nil, err
		}
	}
	if at.IsZero() {
		return nil, errs.NewValueIsRequiredError("timestamp")
	}

	return &Log{
		id:            id,
		requestID:     requestID,
		workerID:      workerID,
		oldStatus:     oldStatus,
		newStatus:     newStatus,
		timestamp:     at,
		collectedKg:   copyFloat(collectedKg),
		notes:         notes,
		isConstructed: true,
	}, nil
}

func (l *Log) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLogIsNotConstructed
	}
	return nil
}

func (l *Log) ID() kernel.UUID        { return l.id }
func (l *Log) RequestID() kernel.UUID { return l.requestID }
func (l *Log) WorkerID() kernel.UUID  { return l.workerID }
func (l *Log) OldStatus() Status      { return l.oldStatus }
func (l *Log) NewStatus() Status      { return l.newStatus }
func (l *Log) Timestamp() time.Time   { return l.timestamp }
func (l *Log) CollectedKg() *float64  { return copyFloat(l.collectedKg) }
func (l *Log) Notes() string          { return l.notes }

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
