package queries

import (
	"errors"
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/pkg/guard"
)

var (
	ErrGetPickupHistoryQueryIsNotConstructed = errors.New(
		"GetPickupHistoryQuery must be created via NewGetPickupHistoryQuery or NewGetWorkerHistoryQuery constructor",
	)
)

// GetPickupHistoryQuery reads the audit trail, either of one pickup request
// or of everything one worker did.
type GetPickupHistoryQuery struct {
	requestID *kernel.UUID
	workerID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPickupHistoryQuery selects the logs of one request.
func NewGetPickupHistoryQuery(requestID kernel.UUID) (GetPickupHistoryQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetPickupHistoryQuery{}, err
	}
	return GetPickupHistoryQuery{requestID: &requestID, guard: guard.NewConstructorGuard()}, nil
}

// NewGetWorkerHistoryQuery selects the logs written by one worker.
func NewGetWorkerHistoryQuery(workerID kernel.UUID) (GetPickupHistoryQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetPickupHistoryQuery{}, err
	}
	return GetPickupHistoryQuery{workerID: &workerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPickupHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupHistoryQueryIsNotConstructed)
}

// LogView is the read model of one audit entry.
type LogView struct {
	ID          kernel.UUID
	RequestID   kernel.UUID
	WorkerID    kernel.UUID
	OldStatus   pickup.Status
	NewStatus   pickup.Status
	Timestamp   time.Time
	CollectedKg *float64
	Notes       string
}
