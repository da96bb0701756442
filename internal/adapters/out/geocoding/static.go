package geocoding

import (
	"context"
	"strings"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/ports"
)

// Place is one entry of a StaticOracle table.
type Place struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// DefaultPlaces is the table used in development when no maps key is set.
var DefaultPlaces = []Place{
	{Name: "pune", Latitude: 18.5204, Longitude: 73.8567},
	{Name: "mumbai", Latitude: 19.0760, Longitude: 72.8777},
	{Name: "chembur", Latitude: 19.0558, Longitude: 72.9097},
	{Name: "lohegaon", Latitude: 18.5835, Longitude: 73.9142},
}

// StaticOracle resolves a query to the first place whose name it contains,
// case-insensitively. Table order decides between several matches.
type StaticOracle struct {
	places []Place
}

// NewStaticOracle creates an oracle over places, or DefaultPlaces when none are given.
func NewStaticOracle(places ...Place) *StaticOracle {
	if len(places) == 0 {
		places = DefaultPlaces
	}

	table := make([]Place, 0, len(places))
	for _, p := range places {
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			continue
		}
		table = append(table, p)
	}
	return &StaticOracle{places: table}
}

func (o *StaticOracle) Resolve(_ context.Context, query string) (kernel.GeoPoint, error) {
	q := strings.ToLower(normalize(query))
	if q == "" {
		return kernel.GeoPoint{}, ports.ErrGeoUnresolved
	}

	for _, p := range o.places {
		if strings.Contains(q, p.Name) {
			return kernel.NewGeoPoint(p.Latitude, p.Longitude)
		}
	}
	return kernel.GeoPoint{}, ports.ErrGeoUnresolved
}
