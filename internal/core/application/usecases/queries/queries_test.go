package queries_test

import (
	"context"
	"testing"
	"time"

	"ewaste/internal/adapters/out/geocoding"
	"ewaste/internal/core/application/usecases/queries"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/domain/services"
	"ewaste/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name  string
		query interface{ Validate() error }
		want  error
	}{
		{"assignment count", queries.GetAssignmentCountQuery{}, queries.ErrGetAssignmentCountQueryIsNotConstructed},
		{"availability", queries.GetWorkerAvailabilityQuery{}, queries.ErrGetWorkerAvailabilityQueryIsNotConstructed},
		{"nearby workers", queries.GetNearbyWorkersQuery{}, queries.ErrGetNearbyWorkersQueryIsNotConstructed},
		{"unassigned", queries.GetUnassignedPickupsQuery{}, queries.ErrGetUnassignedPickupsQueryIsNotConstructed},
		{"worker pickups", queries.GetWorkerPickupsQuery{}, queries.ErrGetWorkerPickupsQueryIsNotConstructed},
		{"history", queries.GetPickupHistoryQuery{}, queries.ErrGetPickupHistoryQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.query.Validate(), tt.want)
		})
	}
}

func TestQueryConstructors_RejectBadInput(t *testing.T) {
	_, err := queries.NewGetAssignmentCountQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetWorkerAvailabilityQuery(kernel.NewUUID(), 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetNearbyWorkersQuery("  ", 10)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetNearbyWorkersQuery("411001", -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetWorkerPickupsQuery(kernel.NewUUID(), "yesterday", time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewGetPickupHistoryQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetWorkerHistoryQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestParsePickupScope(t *testing.T) {
	for in, want := range map[string]queries.PickupScope{
		"":       queries.ScopeAll,
		"all":    queries.ScopeAll,
		"today":  queries.ScopeToday,
		"missed": queries.ScopeMissed,
	} {
		got, err := queries.ParsePickupScope(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	q, err := queries.NewGetWorkerPickupsQuery(kernel.NewUUID(), "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, queries.ScopeAll, q.Scope())
}

type workerList []*worker.Worker

func (l workerList) GetAll(context.Context) ([]*worker.Worker, error) {
	return l, nil
}

func TestGetNearbyWorkersQueryHandler_Handle(t *testing.T) {
	newWorker := func(name, city string, available bool) *worker.Worker {
		w, err := worker.NewWorker(kernel.NewUUID(), worker.Profile{Username: name},
			kernel.NewAddress("", city, "MH", ""), nil)
		require.NoError(t, err)
		w.SetAvailability(available)
		return w
	}
	pune := newWorker("pune", "Pune", true)
	mumbai := newWorker("mumbai", "Mumbai", true)
	lohegaon := newWorker("lohegaon", "Lohegaon", false)
	unknown := newWorker("ghost", "Nagpur", true)

	engine := services.NewDistanceEngine(geocoding.NewStaticOracle(), time.Second)
	handler := queries.NewGetNearbyWorkersQueryHandler(workerList{mumbai, unknown, pune, lohegaon}, engine)

	t.Run("default radius keeps local workers whatever their availability", func(t *testing.T) {
		query, err := queries.NewGetNearbyWorkersQuery("Pune", queries.DefaultNearbyRadiusKm)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, pune.ID(), got[0].ID)
		assert.Zero(t, got[0].DistanceKm)
		assert.Equal(t, lohegaon.ID(), got[1].ID)
		assert.False(t, got[1].Available)
		assert.InDelta(t, 9.27, got[1].DistanceKm, 0.01)
	})

	t.Run("wide radius reaches the other city", func(t *testing.T) {
		query, err := queries.NewGetNearbyWorkersQuery("Pune", 200)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)

		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("unknown origin finds nobody", func(t *testing.T) {
		query, err := queries.NewGetNearbyWorkersQuery("999999", 500)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
