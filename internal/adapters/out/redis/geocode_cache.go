// Package redis stores geocoding answers in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ewaste/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "geocode:"

// DefaultTTL keeps coordinates for thirty days.
const DefaultTTL = 720 * time.Hour

type cachedPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeocodeCache implements ports.GeocodeCache on a Redis client.
type GeocodeCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewGeocodeCache creates a cache whose entries expire after ttl. A non-positive
// ttl selects DefaultTTL.
func NewGeocodeCache(client goredis.UniversalClient, ttl time.Duration) *GeocodeCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &GeocodeCache{client: client, ttl: ttl}
}

func (c *GeocodeCache) Get(ctx context.Context, query string) (kernel.GeoPoint, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+query).Bytes()
	if errors.Is(err, goredis.Nil) {
		return kernel.GeoPoint{}, false, nil
	}
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("get geocode cache: %w", err)
	}

	var cp cachedPoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("decode geocode cache entry %q: %w", query, err)
	}

	p, err := kernel.NewGeoPoint(cp.Lat, cp.Lng)
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("decode geocode cache entry %q: %w", query, err)
	}
	return p, true, nil
}

func (c *GeocodeCache) Set(ctx context.Context, query string, point kernel.GeoPoint) error {
	raw, err := json.Marshal(cachedPoint{Lat: point.Latitude(), Lng: point.Longitude()})
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, keyPrefix+query, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set geocode cache: %w", err)
	}
	return nil
}
