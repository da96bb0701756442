package ports

import (
	"context"
	"errors"

	"ewaste/internal/core/domain/model/kernel"
)

// ErrGeoUnresolved is returned by a GeoOracle that has no answer for a query.
var ErrGeoUnresolved = errors.New("address could not be geocoded")

// GeoOracle turns a free-text address or pincode into coordinates.
// Any error, ErrGeoUnresolved or otherwise, means "no coordinates"; callers
// never treat it as fatal.
type GeoOracle interface {
	Resolve(ctx context.Context, query string) (kernel.GeoPoint, error)
}

// GeocodeCache stores oracle answers keyed by normalized query.
type GeocodeCache interface {
	// Get returns the cached point and whether it was present.
	Get(ctx context.Context, query string) (kernel.GeoPoint, bool, error)
	Set(ctx context.Context, query string, point kernel.GeoPoint) error
}
