package queries

import (
	"context"

	"ewaste/internal/core/domain/model/pickup"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetUnassignedPickupsQueryHandler struct {
	db *gorm.DB
}

func NewGetUnassignedPickupsQueryHandler(db *gorm.DB) GetUnassignedPickupsQueryHandler {
	return GetUnassignedPickupsQueryHandler{db: db}
}

// Handle returns the waiting requests oldest first.
func (h GetUnassignedPickupsQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedPickupsQuery,
) ([]PickupView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(pickup.AwaitingAssignment))
	for _, s := range pickup.AwaitingAssignment {
		statuses = append(statuses, s.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+pickupViewColumns+`
		FROM pickup_requests
		WHERE assigned_worker_id IS NULL
			AND status = ANY(?::text[])
		ORDER BY created_at, id
	`, pq.Array(statuses)).Rows()
	if err != nil {
		return nil, err
	}

	return scanPickupViews(rows)
}
