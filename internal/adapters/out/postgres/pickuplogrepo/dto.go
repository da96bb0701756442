// Package pickuplogrepo stores the append-only pickup audit trail.
package pickuplogrepo

import (
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"

	"github.com/google/uuid"
)

// PickupLogDTO is the row layout of the pickup_logs table.
type PickupLogDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID `gorm:"type:uuid;index;not null"`
	WorkerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	OldStatus   string    `gorm:"type:varchar(32)"`
	NewStatus   string    `gorm:"type:varchar(32);not null"`
	Timestamp   time.Time `gorm:"index;not null"`
	CollectedKg *float64
	Notes       string `gorm:"type:text"`
}

func (PickupLogDTO) TableName() string {
	return "pickup_logs"
}

func fromDomain(l *pickup.Log) PickupLogDTO {
	return PickupLogDTO{
		ID:          l.ID().Bytes(),
		RequestID:   l.RequestID().Bytes(),
		WorkerID:    l.WorkerID().Bytes(),
		OldStatus:   l.OldStatus().String(),
		NewStatus:   l.NewStatus().String(),
		Timestamp:   l.Timestamp(),
		CollectedKg: l.CollectedKg(),
		Notes:       l.Notes(),
	}
}

// ToDomain maps a stored row back to a Log.
func ToDomain(dto PickupLogDTO) (*pickup.Log, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return nil, err
	}

	return pickup.RestoreLog(id, requestID, workerID,
		pickup.Status(dto.OldStatus), pickup.Status(dto.NewStatus),
		dto.Timestamp, dto.CollectedKg, dto.Notes)
}
