// Package pickuprepo persists pickup request aggregates with GORM and maps them
// between their domain and table representations.
package pickuprepo

import (
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"

	"github.com/google/uuid"
)

// PickupRequestDTO is the row layout of the pickup_requests table.
type PickupRequestDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	ContactName      string     `gorm:"type:varchar(255)"`
	ContactPhone     string     `gorm:"type:varchar(32)"`
	ContactEmail     string     `gorm:"type:varchar(255)"`
	Address          AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Latitude         *float64
	Longitude        *float64
	Date             string     `gorm:"type:varchar(10);index"`
	TimeSlot         string     `gorm:"type:varchar(32)"`
	WasteType        string     `gorm:"type:varchar(128)"`
	Status           string     `gorm:"type:varchar(32);index;not null"`
	TrackingStatus   string     `gorm:"type:varchar(16)"`
	AssignedWorkerID *uuid.UUID `gorm:"type:uuid;index"`
	WeightKg         *float64
	Brand            string `gorm:"type:varchar(128)"`
	ItemDetails      string `gorm:"type:text"`
	EstimatedValue   *float64
	RescheduleReason string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"index"`
}

func (PickupRequestDTO) TableName() string {
	return "pickup_requests"
}

// AddressDTO is the embedded postal address of a request.
type AddressDTO struct {
	Line    string `gorm:"type:text"`
	City    string `gorm:"type:varchar(128)"`
	State   string `gorm:"type:varchar(128)"`
	Pincode string `gorm:"type:varchar(16);index"`
}

func fromDomain(r *pickup.Request) PickupRequestDTO {
	var assigned *uuid.UUID
	if id := r.AssignedWorker(); id != nil {
		raw := id.Bytes()
		assigned = &raw
	}

	var lat, lng *float64
	if loc, ok := r.Location(); ok {
		la, ln := loc.Latitude(), loc.Longitude()
		lat, lng = &la, &ln
	}

	addr := r.Address()
	contact := r.Contact()

	return PickupRequestDTO{
		ID:           r.ID().Bytes(),
		RequesterID:  r.RequesterID().Bytes(),
		ContactName:  contact.Name,
		ContactPhone: contact.Phone,
		ContactEmail: contact.Email,
		Address: AddressDTO{
			Line:    addr.Line,
			City:    addr.City,
			State:   addr.State,
			Pincode: addr.Pincode,
		},
		Latitude:         lat,
		Longitude:        lng,
		Date:             r.Date(),
		TimeSlot:         r.TimeSlot(),
		WasteType:        r.WasteType(),
		Status:           r.Status().String(),
		TrackingStatus:   r.TrackingStatus().String(),
		AssignedWorkerID: assigned,
		WeightKg:         r.WeightKg(),
		Brand:            r.Brand(),
		ItemDetails:      r.ItemDetails(),
		EstimatedValue:   r.EstimatedValue(),
		RescheduleReason: r.RescheduleReason(),
		CreatedAt:        r.CreatedAt(),
	}
}

func toDomain(dto PickupRequestDTO) (*pickup.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requester, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	var assigned *kernel.UUID
	if dto.AssignedWorkerID != nil {
		wID, workerErr := kernel.UUIDFromBytes((*dto.AssignedWorkerID)[:])
		if workerErr != nil {
			return nil, workerErr
		}
		assigned = &wID
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &p
	}

	return pickup.RestoreRequest(pickup.State{
		ID: id,
		Details: pickup.Details{
			RequesterID: requester,
			Contact: pickup.Contact{
				Name:  dto.ContactName,
				Phone: dto.ContactPhone,
				Email: dto.ContactEmail,
			},
			Address:   kernel.NewAddress(dto.Address.Line, dto.Address.City, dto.Address.State, dto.Address.Pincode),
			Location:  location,
			Date:      dto.Date,
			TimeSlot:  dto.TimeSlot,
			WasteType: dto.WasteType,
			Status:    pickup.Status(dto.Status),
		},
		TrackingStatus:   pickup.TrackingStatus(dto.TrackingStatus),
		AssignedWorkerID: assigned,
		WeightKg:         dto.WeightKg,
		Brand:            dto.Brand,
		ItemDetails:      dto.ItemDetails,
		EstimatedValue:   dto.EstimatedValue,
		RescheduleReason: dto.RescheduleReason,
		CreatedAt:        dto.CreatedAt,
	})
}
