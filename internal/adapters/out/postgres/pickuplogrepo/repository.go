package pickuplogrepo

import (
	"context"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"

	"gorm.io/gorm"
)

// GormPickupLogRepository implements ports.PickupLogRepository using GORM.
// It only inserts; rows are never updated or deleted.
type GormPickupLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPickupLogRepository(db *gorm.DB, tracker aggregateTracker) *GormPickupLogRepository {
	return &GormPickupLogRepository{db: db, tracker: tracker}
}

// Append inserts one audit record and tracks it for publishing after commit.
func (r *GormPickupLogRepository) Append(ctx context.Context, log *pickup.Log) error {
	if err := log.Validate(); err != nil {
		return err
	}

	dto := fromDomain(log)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(log.ID(), log)
	return nil
}
