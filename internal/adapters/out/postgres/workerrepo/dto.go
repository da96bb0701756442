// Package workerrepo persists workers with GORM.
package workerrepo

import (
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO is the row layout of the workers table.
type WorkerDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username  string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	FullName  string     `gorm:"type:varchar(255)"`
	Phone     string     `gorm:"type:varchar(32)"`
	Email     string     `gorm:"type:varchar(255)"`
	Address   AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Latitude  *float64
	Longitude *float64
	Available bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (WorkerDTO) TableName() string {
	return "workers"
}

// AddressDTO is the embedded home-base address of a worker.
type AddressDTO struct {
	Line    string `gorm:"type:text"`
	City    string `gorm:"type:varchar(128)"`
	State   string `gorm:"type:varchar(128)"`
	Pincode string `gorm:"type:varchar(16)"`
}

func fromDomain(w *worker.Worker) WorkerDTO {
	var lat, lng *float64
	if loc, ok := w.Location(); ok {
		la, ln := loc.Latitude(), loc.Longitude()
		lat, lng = &la, &ln
	}

	p := w.Profile()
	addr := w.Address()

	return WorkerDTO{
		ID:       w.ID().Bytes(),
		Username: p.Username,
		FullName: p.FullName,
		Phone:    p.Phone,
		Email:    p.Email,
		Address: AddressDTO{
			Line:    addr.Line,
			City:    addr.City,
			State:   addr.State,
			Pincode: addr.Pincode,
		},
		Latitude:  lat,
		Longitude: lng,
		Available: w.IsAvailable(),
	}
}

func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &p
	}

	return worker.RestoreWorker(
		id,
		worker.Profile{
			Username: dto.Username,
			FullName: dto.FullName,
			Phone:    dto.Phone,
			Email:    dto.Email,
		},
		kernel.NewAddress(dto.Address.Line, dto.Address.City, dto.Address.State, dto.Address.Pincode),
		location,
		dto.Available,
	)
}
