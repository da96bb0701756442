// Package services provides the domain services of the pickup engine that do
// not belong to a single aggregate.
//
// The package includes:
//   - DistanceEngine: haversine distances and worker ranking, geocoding entities
//     without stored coordinates through a GeoOracle
//   - AssignmentPlanner: capacity-aware nearest-worker selection with a typed
//     trace of every decision
//
// Both services are read-only. Persisting an assignment is done by the
// application layer inside a unit of work.
package services
