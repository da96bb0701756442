package commands_test

import (
	"context"
	"testing"
	"time"

	"ewaste/internal/core/application/usecases/commands"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/domain/services"
	"ewaste/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPickupRepository struct{ mock.Mock }

func (m *MockPickupRepository) Add(ctx context.Context, r *pickup.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockPickupRepository) Update(ctx context.Context, r *pickup.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockPickupRepository) Get(ctx context.Context, id kernel.UUID) (*pickup.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Request), args.Error(1)
}

func (m *MockPickupRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*pickup.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Request), args.Error(1)
}

func (m *MockPickupRepository) GetAllAwaitingAssignment(ctx context.Context) ([]*pickup.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pickup.Request), args.Error(1)
}

func (m *MockPickupRepository) CountAssignments(ctx context.Context, workerID kernel.UUID, scope ports.AssignmentScope) (int, error) {
	args := m.Called(ctx, workerID, scope)
	return args.Int(0), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Update(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetAllAvailable(ctx context.Context) ([]*worker.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetAll(ctx context.Context) ([]*worker.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worker.Worker), args.Error(1)
}

type MockPickupLogRepository struct{ mock.Mock }

func (m *MockPickupLogRepository) Append(ctx context.Context, l *pickup.Log) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) PickupRepository() ports.PickupRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupRepository)
}

func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUoW) PickupLogRepository() ports.PickupLogRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupLogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}

type MockPickupUoWFactory struct{ mock.Mock }

func (m *MockPickupUoWFactory) Create() commands.PickupUoW {
	args := m.Called()
	return args.Get(0).(commands.PickupUoW)
}

type MockWorkerUoWFactory struct{ mock.Mock }

func (m *MockWorkerUoWFactory) Create() commands.WorkerUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkerUoW)
}

type MockPlanner struct{ mock.Mock }

func (m *MockPlanner) Plan(ctx context.Context, r *pickup.Request, pool []*worker.Worker, maxAssignments int) (services.Plan, error) {
	args := m.Called(ctx, r, pool, maxAssignments)
	return args.Get(0).(services.Plan), args.Error(1)
}

// fixture bundles a unit of work with its repositories. The repository
// accessors may be called any number of times.
type fixture struct {
	uow     *MockUoW
	pickups *MockPickupRepository
	workers *MockWorkerRepository
	logs    *MockPickupLogRepository
}

func newFixture() fixture {
	f := fixture{
		uow:     new(MockUoW),
		pickups: new(MockPickupRepository),
		workers: new(MockWorkerRepository),
		logs:    new(MockPickupLogRepository),
	}
	f.uow.On("PickupRepository").Return(f.pickups).Maybe()
	f.uow.On("WorkerRepository").Return(f.workers).Maybe()
	f.uow.On("PickupLogRepository").Return(f.logs).Maybe()
	return f
}

func (f fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.uow.AssertExpectations(t)
	f.pickups.AssertExpectations(t)
	f.workers.AssertExpectations(t)
	f.logs.AssertExpectations(t)
}

func newPendingRequest(t *testing.T) *pickup.Request {
	t.Helper()
	r, err := pickup.NewRequest(kernel.NewUUID(), pickup.Details{
		RequesterID: kernel.NewUUID(),
		Address:     kernel.NewAddress("12 MG Road", "Pune", "MH", "411001"),
		Date:        "2026-10-20",
		TimeSlot:    "10:00",
		WasteType:   "Laptop",
	}, time.Now())
	require.NoError(t, err)
	return r
}

func newAssignedRequest(t *testing.T, w *worker.Worker) *pickup.Request {
	t.Helper()
	r := newPendingRequest(t)
	_, err := r.Assign(w.ID(), w.Username(), time.Now())
	require.NoError(t, err)
	return r
}

func newWorker(t *testing.T, username string) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), worker.Profile{Username: username},
		kernel.NewAddress("", "Pune", "MH", "411001"), nil)
	require.NoError(t, err)
	return w
}

func logWith(from, to pickup.Status) any {
	return mock.MatchedBy(func(l *pickup.Log) bool {
		return l.OldStatus() == from && l.NewStatus() == to
	})
}
