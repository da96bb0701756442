package queries

import (
	"context"

	"ewaste/internal/core/domain/model/pickup"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// closedStatuses are never reported as missed.
var closedStatuses = []string{
	pickup.Completed.String(),
	pickup.Cancelled.String(),
	pickup.Rescheduled.String(),
}

type GetWorkerPickupsQueryHandler struct {
	db *gorm.DB
}

func NewGetWorkerPickupsQueryHandler(db *gorm.DB) GetWorkerPickupsQueryHandler {
	return GetWorkerPickupsQueryHandler{db: db}
}

// Handle returns the worker's pickups in the query scope, ordered by date and
// time slot.
func (h GetWorkerPickupsQueryHandler) Handle(
	ctx context.Context,
	query GetWorkerPickupsQuery,
) ([]PickupView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	today := query.Today().Format(pickup.DateLayout)
	sql := `
		SELECT` + pickupViewColumns + `
		FROM pickup_requests
		WHERE assigned_worker_id = ?`
	args := []any{query.WorkerID().Bytes()}

	switch query.Scope() {
	case ScopeToday:
		sql += ` AND date = ? AND status = ?`
		args = append(args, today, pickup.Assigned.String())
	case ScopeMissed:
		sql += ` AND date < ? AND status <> ALL(?::text[])`
		args = append(args, today, pq.Array(closedStatuses))
	}
	sql += `
		ORDER BY date, time_slot, created_at`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}

	return scanPickupViews(rows)
}
