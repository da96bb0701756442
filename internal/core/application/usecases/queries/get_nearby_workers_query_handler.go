package queries

import (
	"context"

	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/domain/services"
)

// WorkerLister supplies the workers to search.
type WorkerLister interface {
	GetAll(ctx context.Context) ([]*worker.Worker, error)
}

// GetNearbyWorkersQueryHandler searches every registered worker, whatever its
// availability, and keeps those the distance engine places inside the radius.
// Workers that cannot be placed are left out.
type GetNearbyWorkersQueryHandler struct {
	workers WorkerLister
	engine  *services.DistanceEngine
}

func NewGetNearbyWorkersQueryHandler(workers WorkerLister, engine *services.DistanceEngine) GetNearbyWorkersQueryHandler {
	return GetNearbyWorkersQueryHandler{workers: workers, engine: engine}
}

func (h GetNearbyWorkersQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyWorkersQuery,
) ([]GetNearbyWorkersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.workers.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := h.engine.WithinRadius(ctx, services.PincodeTarget(query.Pincode()), all, query.RadiusKm())

	result := make([]GetNearbyWorkersQueryResponse, 0, len(ranked))
	for _, r := range ranked {
		p := r.Worker.Profile()
		result = append(result, GetNearbyWorkersQueryResponse{
			ID:         r.Worker.ID(),
			Username:   p.Username,
			FullName:   p.FullName,
			Phone:      p.Phone,
			Address:    r.Worker.Address(),
			Available:  r.Worker.IsAvailable(),
			DistanceKm: r.DistanceKm,
		})
	}

	return result, nil
}
