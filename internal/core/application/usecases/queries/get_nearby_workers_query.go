package queries

import (
	"errors"
	"strings"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/pkg/errs"
	"ewaste/internal/pkg/guard"
)

// DefaultNearbyRadiusKm is used when a caller gives no radius.
const DefaultNearbyRadiusKm = 10.0

var ErrGetNearbyWorkersQueryIsNotConstructed = errors.New(
	"GetNearbyWorkersQuery must be created via NewGetNearbyWorkersQuery constructor",
)

// GetNearbyWorkersQuery lists the workers within radiusKm of a pincode.
type GetNearbyWorkersQuery struct {
	pincode  string
	radiusKm float64

	guard guard.ConstructorGuard
}

func NewGetNearbyWorkersQuery(pincode string, radiusKm float64) (GetNearbyWorkersQuery, error) {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return GetNearbyWorkersQuery{}, errs.NewValueIsRequiredError("pincode")
	}
	if radiusKm < 0 {
		return GetNearbyWorkersQuery{}, errs.NewValueIsOutOfRangeError("radius", radiusKm, 0, "unbounded")
	}

	return GetNearbyWorkersQuery{
		pincode:  pincode,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetNearbyWorkersQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyWorkersQueryIsNotConstructed)
}

func (q GetNearbyWorkersQuery) Pincode() string {
	return q.pincode
}

func (q GetNearbyWorkersQuery) RadiusKm() float64 {
	return q.radiusKm
}

type GetNearbyWorkersQueryResponse struct {
	ID         kernel.UUID
	Username   string
	FullName   string
	Phone      string
	Address    kernel.Address
	Available  bool
	DistanceKm float64
}
