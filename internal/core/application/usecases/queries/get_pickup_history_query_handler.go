package queries

import (
	"context"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPickupHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetPickupHistoryQueryHandler(db *gorm.DB) GetPickupHistoryQueryHandler {
	return GetPickupHistoryQueryHandler{db: db}
}

// Handle returns the selected logs newest first.
func (h GetPickupHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetPickupHistoryQuery,
) ([]LogView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	column, id := "request_id", query.requestID
	if query.workerID != nil {
		column, id = "worker_id", query.workerID
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			request_id,
			worker_id,
			old_status,
			new_status,
			"timestamp",
			collected_kg,
			notes
		FROM pickup_logs
		WHERE `+column+` = ?
		ORDER BY "timestamp" DESC, id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]LogView, 0)
	for rows.Next() {
		var v LogView
		var logID, requestID, workerID uuid.UUID
		var oldStatus, newStatus string

		err = rows.Scan(
			&logID,
			&requestID,
			&workerID,
			&oldStatus,
			&newStatus,
			&v.Timestamp,
			&v.CollectedKg,
			&v.Notes,
		)
		if err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(logID[:]); err != nil {
			return nil, err
		}
		if v.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
			return nil, err
		}
		if v.WorkerID, err = kernel.UUIDFromBytes(workerID[:]); err != nil {
			return nil, err
		}
		v.OldStatus = pickup.Status(oldStatus)
		v.NewStatus = pickup.Status(newStatus)

		logs = append(logs, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
