package pickuprepo

import (
	"context"
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/ports"
	"ewaste/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPickupRepository implements ports.PickupRepository using GORM.
type GormPickupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPickupRepository creates a new GORM pickup request repository.
func NewGormPickupRepository(db *gorm.DB, tracker aggregateTracker) *GormPickupRepository {
	return &GormPickupRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pickup request.
func (r *GormPickupRepository) Add(ctx context.Context, request *pickup.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Update overwrites every column of an existing request, so cleared optional
// fields (weight, assignee) are written as NULL.
func (r *GormPickupRepository) Update(ctx context.Context, request *pickup.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	result := r.db.WithContext(ctx).
		Model(&PickupRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pickup request", request.ID().String())
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Get retrieves a pickup request by ID.
func (r *GormPickupRepository) Get(ctx context.Context, id kernel.UUID) (*pickup.Request, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a pickup request and takes a row lock (SELECT ... FOR UPDATE).
func (r *GormPickupRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*pickup.Request, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetAllAwaitingAssignment returns unassigned PENDING and "Paid - Pending Pickup" requests, oldest first.
func (r *GormPickupRepository) GetAllAwaitingAssignment(ctx context.Context) ([]*pickup.Request, error) {
	statuses := make([]string, 0, len(pickup.AwaitingAssignment))
	for _, s := range pickup.AwaitingAssignment {
		statuses = append(statuses, s.String())
	}

	var dtos []PickupRequestDTO
	err := r.db.WithContext(ctx).
		Where("assigned_worker_id IS NULL AND status IN ?", statuses).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*pickup.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// CountAssignments counts the requests bound to workerID under scope.
func (r *GormPickupRepository) CountAssignments(
	ctx context.Context,
	workerID kernel.UUID,
	scope ports.AssignmentScope,
) (int, error) {
	if err := workerID.Validate(); err != nil {
		return 0, err
	}

	q := r.db.WithContext(ctx).
		Model(&PickupRequestDTO{}).
		Where("assigned_worker_id = ?", workerID.Bytes())
	if scope == ports.OpenAssignments {
		q = q.Where("status NOT IN ?", []string{pickup.Completed.String(), pickup.Cancelled.String()})
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *GormPickupRepository) get(db *gorm.DB, id kernel.UUID) (*pickup.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickupRequestDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pickup request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
