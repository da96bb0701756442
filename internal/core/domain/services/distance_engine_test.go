package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/domain/services"
	"ewaste/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOracle answers from a fixed table and records every query it receives.
type stubOracle struct {
	mu      sync.Mutex
	points  map[string][2]float64
	queries []string
	block   bool
}

func newStubOracle(points map[string][2]float64) *stubOracle {
	return &stubOracle{points: points}
}

func (o *stubOracle) Resolve(ctx context.Context, query string) (kernel.GeoPoint, error) {
	o.mu.Lock()
	o.queries = append(o.queries, query)
	o.mu.Unlock()

	if o.block {
		<-ctx.Done()
		return kernel.GeoPoint{}, ctx.Err()
	}
	p, ok := o.points[query]
	if !ok {
		return kernel.GeoPoint{}, ports.ErrGeoUnresolved
	}
	return kernel.NewGeoPoint(p[0], p[1])
}

var cityTable = map[string][2]float64{
	"411001": {18.5204, 73.8567}, // pune
	"400001": {19.0760, 72.8777}, // mumbai
	"400071": {19.0558, 72.9097}, // chembur
	"411032": {18.5835, 73.9142}, // lohegaon
}

func pinWorker(t *testing.T, name, pincode string) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), worker.Profile{Username: name}, kernel.NewAddress("", "", "", pincode), nil)
	require.NoError(t, err)
	return w
}

func coordWorker(t *testing.T, name string, lat, lng float64) *worker.Worker {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	w, err := worker.NewWorker(kernel.NewUUID(), worker.Profile{Username: name}, kernel.Address{}, &p)
	require.NoError(t, err)
	return w
}

func TestDistanceEngine_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("stored coordinates skip the oracle", func(t *testing.T) {
		oracle := newStubOracle(cityTable)
		engine := services.NewDistanceEngine(oracle, time.Second)
		w := coordWorker(t, "a", 10, 20)

		p, ok := engine.Resolve(ctx, w)

		require.True(t, ok)
		assert.InDelta(t, 10.0, p.Latitude(), 0)
		assert.Empty(t, oracle.queries)
	})

	t.Run("falls back from full address to pincode", func(t *testing.T) {
		oracle := newStubOracle(cityTable)
		engine := services.NewDistanceEngine(oracle, time.Second)
		w, err := worker.NewWorker(kernel.NewUUID(), worker.Profile{Username: "b"},
			kernel.NewAddress("Flat 4", "Pune", "MH", "411001"), nil)
		require.NoError(t, err)

		p, ok := engine.Resolve(ctx, w)

		require.True(t, ok)
		assert.InDelta(t, 18.5204, p.Latitude(), 1e-9)
		assert.Equal(t, []string{"Flat 4, Pune, MH, 411001", "411001"}, oracle.queries)
	})

	t.Run("unknown address is unresolved not an error", func(t *testing.T) {
		engine := services.NewDistanceEngine(newStubOracle(cityTable), time.Second)

		_, ok := engine.Resolve(ctx, services.PincodeTarget("999999"))

		assert.False(t, ok)
	})

	t.Run("slow oracle is cut off by the timeout", func(t *testing.T) {
		oracle := newStubOracle(cityTable)
		oracle.block = true
		engine := services.NewDistanceEngine(oracle, 20*time.Millisecond)

		start := time.Now()
		_, ok := engine.Resolve(ctx, services.PincodeTarget("411001"))

		assert.False(t, ok)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("nil oracle resolves only stored coordinates", func(t *testing.T) {
		engine := services.NewDistanceEngine(nil, 0)

		_, ok := engine.Resolve(ctx, services.PincodeTarget("411001"))
		assert.False(t, ok)

		_, ok = engine.Resolve(ctx, coordWorker(t, "c", 1, 1))
		assert.True(t, ok)
	})
}

func TestDistanceEngine_Nearest(t *testing.T) {
	ctx := context.Background()
	engine := services.NewDistanceEngine(newStubOracle(cityTable), time.Second)

	t.Run("returns strictly nearest and reports excluded", func(t *testing.T) {
		mumbai := pinWorker(t, "mumbai", "400001")
		ghost := pinWorker(t, "ghost", "000000")
		lohegaon := pinWorker(t, "lohegaon", "411032")

		res := engine.Nearest(ctx, services.PincodeTarget("411001"), []*worker.Worker{mumbai, ghost, lohegaon})

		require.True(t, res.TargetResolved)
		require.NotNil(t, res.Nearest)
		assert.True(t, res.Nearest.Worker.IsEqual(lohegaon))
		assert.InDelta(t, 9.27, res.Nearest.DistanceKm, 0.01)
		require.Len(t, res.Excluded, 1)
		assert.True(t, res.Excluded[0].IsEqual(ghost))
	})

	t.Run("ties keep the first candidate", func(t *testing.T) {
		first := pinWorker(t, "first", "400001")
		second := pinWorker(t, "second", "400001")

		res := engine.Nearest(ctx, services.PincodeTarget("411001"), []*worker.Worker{first, second})

		require.NotNil(t, res.Nearest)
		assert.True(t, res.Nearest.Worker.IsEqual(first))
	})

	t.Run("no resolvable candidate yields none", func(t *testing.T) {
		res := engine.Nearest(ctx, services.PincodeTarget("411001"), []*worker.Worker{pinWorker(t, "x", "1")})

		assert.True(t, res.TargetResolved)
		assert.Nil(t, res.Nearest)
	})

	t.Run("unresolved target resolves no candidates", func(t *testing.T) {
		res := engine.Nearest(ctx, services.PincodeTarget("nowhere"), []*worker.Worker{pinWorker(t, "x", "411001")})

		assert.False(t, res.TargetResolved)
		assert.Nil(t, res.Nearest)
		assert.Empty(t, res.Excluded)
	})
}

func TestDistanceEngine_WithinRadius(t *testing.T) {
	engine := services.NewDistanceEngine(newStubOracle(cityTable), time.Second)
	pune := pinWorker(t, "pune", "411001")
	mumbai := pinWorker(t, "mumbai", "400001")
	ghost := pinWorker(t, "ghost", "")
	lohegaon := pinWorker(t, "lohegaon", "411032")

	got := engine.WithinRadius(context.Background(), services.PincodeTarget("411001"),
		[]*worker.Worker{mumbai, pune, ghost, lohegaon}, 10)

	require.Len(t, got, 2)
	assert.True(t, got[0].Worker.IsEqual(pune))
	assert.Zero(t, got[0].DistanceKm)
	assert.True(t, got[1].Worker.IsEqual(lohegaon))

	assert.Empty(t, engine.WithinRadius(context.Background(), services.PincodeTarget("411001"), []*worker.Worker{mumbai}, 100))
	assert.Len(t, engine.WithinRadius(context.Background(), services.PincodeTarget("411001"), []*worker.Worker{mumbai}, 120.2), 1)
	assert.Empty(t, engine.WithinRadius(context.Background(), services.PincodeTarget(""), []*worker.Worker{pune}, 10))
}

func TestDistanceEngine_Distance(t *testing.T) {
	engine := services.NewDistanceEngine(nil, 0)
	a, err := kernel.NewGeoPoint(19.0760, 72.8777)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(19.0558, 72.9097)
	require.NoError(t, err)

	assert.InDelta(t, 4.044, engine.Distance(a, b), 0.001)
	assert.Equal(t, engine.Distance(a, b), engine.Distance(b, a))
	assert.Zero(t, engine.Distance(a, a))
}
