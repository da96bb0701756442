package queries

import (
	"database/sql"
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"

	"github.com/google/uuid"
)

// PickupView is the read model of a pickup request.
type PickupView struct {
	ID               kernel.UUID
	RequesterID      kernel.UUID
	ContactName      string
	ContactPhone     string
	Address          kernel.Address
	Date             string
	TimeSlot         string
	WasteType        string
	Status           pickup.Status
	TrackingStatus   pickup.TrackingStatus
	AssignedWorkerID *kernel.UUID
	WeightKg         *float64
	RescheduleReason string
	CreatedAt        time.Time
}

const pickupViewColumns = `
			id,
			requester_id,
			contact_name,
			contact_phone,
			address_line,
			address_city,
			address_state,
			address_pincode,
			date,
			time_slot,
			waste_type,
			status,
			tracking_status,
			assigned_worker_id,
			weight_kg,
			reschedule_reason,
			created_at`

func scanPickupViews(rows *sql.Rows) ([]PickupView, error) {
	defer rows.Close()

	views := make([]PickupView, 0)
	for rows.Next() {
		var v PickupView
		var id, requester uuid.UUID
		var assigned uuid.NullUUID
		var line, city, state, pincode string
		var status, tracking string

		err := rows.Scan(
			&id,
			&requester,
			&v.ContactName,
			&v.ContactPhone,
			&line,
			&city,
			&state,
			&pincode,
			&v.Date,
			&v.TimeSlot,
			&v.WasteType,
			&status,
			&tracking,
			&assigned,
			&v.WeightKg,
			&v.RescheduleReason,
			&v.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.RequesterID, err = kernel.UUIDFromBytes(requester[:]); err != nil {
			return nil, err
		}
		if assigned.Valid {
			workerID, idErr := kernel.UUIDFromBytes(assigned.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			v.AssignedWorkerID = &workerID
		}
		v.Address = kernel.NewAddress(line, city, state, pincode)
		v.Status = pickup.Status(status)
		v.TrackingStatus = pickup.TrackingStatus(tracking)

		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
