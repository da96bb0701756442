package services

import (
	"context"
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/ports"
)

// DefaultGeocodeTimeout bounds a single oracle call when none is configured.
const DefaultGeocodeTimeout = 5 * time.Second

// Locatable is anything that can be placed on the map: stored coordinates
// first, otherwise the geocoder queries it offers, best first.
type Locatable interface {
	Location() (kernel.GeoPoint, bool)
	GeoQueries() []string
}

// PincodeTarget is a bare pincode used as a search origin.
type PincodeTarget string

func (p PincodeTarget) Location() (kernel.GeoPoint, bool) {
	return kernel.GeoPoint{}, false
}

func (p PincodeTarget) GeoQueries() []string {
	return kernel.NewAddress("", "", "", string(p)).GeoQueries()
}

// RankedWorker is a worker together with its distance to the target.
type RankedWorker struct {
	Worker     *worker.Worker
	DistanceKm float64
}

// NearestResult is the outcome of DistanceEngine.Nearest.
type NearestResult struct {
	// TargetResolved is false when the target itself could not be placed;
	// no candidate is resolved in that case.
	TargetResolved bool
	// Nearest is nil when no candidate could be placed.
	Nearest *RankedWorker
	// Excluded are the candidates skipped because their location is unknown,
	// in input order.
	Excluded []*worker.Worker
}

// DistanceEngine ranks workers by great-circle distance to a target.
//
// Coordinates stored on an entity are used as is. Otherwise the GeoOracle is
// asked for each of the entity's queries in turn, every call bounded by the
// engine timeout. A failed or slow lookup makes that entity unresolved and
// never aborts the ranking of the others.
type DistanceEngine struct {
	oracle  ports.GeoOracle
	timeout time.Duration
}

// NewDistanceEngine creates an engine. A non-positive timeout selects DefaultGeocodeTimeout.
func NewDistanceEngine(oracle ports.GeoOracle, timeout time.Duration) *DistanceEngine {
	if timeout <= 0 {
		timeout = DefaultGeocodeTimeout
	}
	return &DistanceEngine{oracle: oracle, timeout: timeout}
}

// Distance returns the haversine distance in kilometres.
func (e *DistanceEngine) Distance(a, b kernel.GeoPoint) float64 {
	return a.DistanceTo(b)
}

// Resolve places l on the map. The boolean is false when neither stored
// coordinates nor any geocoder query produced a point.
func (e *DistanceEngine) Resolve(ctx context.Context, l Locatable) (kernel.GeoPoint, bool) {
	if p, ok := l.Location(); ok {
		return p, true
	}
	if e.oracle == nil {
		return kernel.GeoPoint{}, false
	}

	for _, q := range l.GeoQueries() {
		if ctx.Err() != nil {
			break
		}
		if p, ok := e.lookup(ctx, q); ok {
			return p, true
		}
	}
	return kernel.GeoPoint{}, false
}

// Nearest returns the candidate with the strictly smallest distance to target.
// Ties keep the earlier candidate.
func (e *DistanceEngine) Nearest(ctx context.Context, target Locatable, candidates []*worker.Worker) NearestResult {
	origin, ok := e.Resolve(ctx, target)
	if !ok {
		return NearestResult{}
	}

	res := NearestResult{TargetResolved: true}
	for _, c := range candidates {
		p, ok := e.Resolve(ctx, c)
		if !ok {
			res.Excluded = append(res.Excluded, c)
			continue
		}

		d := e.Distance(origin, p)
		if res.Nearest == nil || d < res.Nearest.DistanceKm {
			res.Nearest = &RankedWorker{Worker: c, DistanceKm: d}
		}
	}

	return res
}

// WithinRadius returns the candidates at most radiusKm from target, in input
// order. Unresolved candidates are left out.
func (e *DistanceEngine) WithinRadius(
	ctx context.Context,
	target Locatable,
	candidates []*worker.Worker,
	radiusKm float64,
) []RankedWorker {
	result := make([]RankedWorker, 0)

	origin, ok := e.Resolve(ctx, target)
	if !ok {
		return result
	}

	for _, c := range candidates {
		p, ok := e.Resolve(ctx, c)
		if !ok {
			continue
		}
		if d := e.Distance(origin, p); d <= radiusKm {
			result = append(result, RankedWorker{Worker: c, DistanceKm: d})
		}
	}

	return result
}

func (e *DistanceEngine) lookup(ctx context.Context, query string) (kernel.GeoPoint, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	p, err := e.oracle.Resolve(ctx, query)
	if err != nil || p.Validate() != nil {
		return kernel.GeoPoint{}, false
	}
	return p, true
}
