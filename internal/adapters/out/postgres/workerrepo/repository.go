package workerrepo

import (
	"context"
	"errors"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkerRepository implements ports.WorkerRepository using GORM.
type GormWorkerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new worker. A duplicate username is reported as a conflict.
func (r *GormWorkerRepository) Add(ctx context.Context, w *worker.Worker) error {
	if err := w.Validate(); err != nil {
		return err
	}

	dto := fromDomain(w)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("worker", "username "+dto.Username+" is taken", err)
		}
		return err
	}

	r.tracker.TrackAggregate(w.ID(), w)
	return nil
}

// Update overwrites the mutable columns of an existing worker.
func (r *GormWorkerRepository) Update(ctx context.Context, w *worker.Worker) error {
	if err := w.Validate(); err != nil {
		return err
	}

	dto := fromDomain(w)
	result := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("worker", w.ID().String())
	}

	r.tracker.TrackAggregate(w.ID(), w)
	return nil
}

// Get retrieves a worker by ID.
func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a worker and locks its row for the rest of the transaction.
func (r *GormWorkerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetAllAvailable returns the assignment pool in registration order.
func (r *GormWorkerRepository) GetAllAvailable(ctx context.Context) ([]*worker.Worker, error) {
	return r.find(r.db.WithContext(ctx).Where("available = ?", true))
}

// GetAll returns every worker in registration order.
func (r *GormWorkerRepository) GetAll(ctx context.Context) ([]*worker.Worker, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormWorkerRepository) find(db *gorm.DB) ([]*worker.Worker, error) {
	var dtos []WorkerDTO
	if err := db.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	workers := make([]*worker.Worker, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}

	return workers, nil
}

func (r *GormWorkerRepository) get(db *gorm.DB, id kernel.UUID) (*worker.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
