package geocoding

import (
	"context"
	"log/slog"
	"strings"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/ports"
)

// CachedOracle answers from cache first and stores successful lookups.
// Cache failures are logged and never fail a lookup.
type CachedOracle struct {
	inner  ports.GeoOracle
	cache  ports.GeocodeCache
	logger *slog.Logger
}

func NewCachedOracle(inner ports.GeoOracle, cache ports.GeocodeCache, logger *slog.Logger) *CachedOracle {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedOracle{
		inner:  inner,
		cache:  cache,
		logger: logger.With("component", "geocode_cache"),
	}
}

func (o *CachedOracle) Resolve(ctx context.Context, query string) (kernel.GeoPoint, error) {
	key := strings.ToLower(normalize(query))
	if key == "" {
		return kernel.GeoPoint{}, ports.ErrGeoUnresolved
	}

	p, ok, err := o.cache.Get(ctx, key)
	switch {
	case err != nil:
		o.logger.WarnContext(ctx, "geocode cache read failed", "query", key, "error", err)
	case ok:
		return p, nil
	}

	p, err = o.inner.Resolve(ctx, query)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	if err := o.cache.Set(ctx, key, p); err != nil {
		o.logger.WarnContext(ctx, "geocode cache write failed", "query", key, "error", err)
	}
	return p, nil
}
