package orchestrator_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"ewaste/internal/core/application/orchestrator"
	"ewaste/internal/core/application/usecases/commands"
	"ewaste/internal/core/application/usecases/queries"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/core/domain/services"
	"ewaste/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreatePickupHandler struct{ mock.Mock }

func (m *MockCreatePickupHandler) Handle(ctx context.Context, cmd commands.CreatePickupCommand) (*pickup.Request, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Request), args.Error(1)
}

type MockAutoAssignHandler struct{ mock.Mock }

func (m *MockAutoAssignHandler) Handle(ctx context.Context, cmd commands.AutoAssignCommand) (commands.AutoAssignResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AutoAssignResult), args.Error(1)
}

type MockAssignWorkerHandler struct{ mock.Mock }

func (m *MockAssignWorkerHandler) Handle(ctx context.Context, cmd commands.AssignWorkerCommand) (*pickup.Request, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Request), args.Error(1)
}

type MockUnassignedPickupsHandler struct{ mock.Mock }

func (m *MockUnassignedPickupsHandler) Handle(ctx context.Context, query queries.GetUnassignedPickupsQuery) ([]queries.PickupView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.PickupView), args.Error(1)
}

type MockAssignmentCountHandler struct{ mock.Mock }

func (m *MockAssignmentCountHandler) Handle(
	ctx context.Context,
	query queries.GetAssignmentCountQuery,
) (queries.GetAssignmentCountQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetAssignmentCountQueryResponse), args.Error(1)
}

type MockWorkerAvailabilityHandler struct{ mock.Mock }

func (m *MockWorkerAvailabilityHandler) Handle(
	ctx context.Context,
	query queries.GetWorkerAvailabilityQuery,
) (queries.GetWorkerAvailabilityQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetWorkerAvailabilityQueryResponse), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(t *testing.T) *pickup.Request {
	t.Helper()
	r, err := pickup.NewRequest(kernel.NewUUID(), details(), time.Now())
	require.NoError(t, err)
	return r
}

func details() pickup.Details {
	return pickup.Details{
		RequesterID: kernel.NewUUID(),
		Address:     kernel.NewAddress("12 MG Road", "Pune", "MH", "411001"),
		Date:        "2026-10-20",
	}
}

func newWorker(t *testing.T, name string) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), worker.Profile{Username: name},
		kernel.NewAddress("", "Pune", "MH", "411001"), nil)
	require.NoError(t, err)
	return w
}

func assignedResult(t *testing.T, r *pickup.Request, w *worker.Worker) commands.AutoAssignResult {
	t.Helper()
	_, err := r.Assign(w.ID(), w.Username(), time.Now())
	require.NoError(t, err)
	return commands.AutoAssignResult{
		Request: r,
		Plan: services.Plan{
			Worker: w,
			Trace:  []services.TraceEvent{{Kind: services.TraceSelected, WorkerID: w.ID()}},
		},
	}
}

func forRequest(id kernel.UUID) any {
	return mock.MatchedBy(func(cmd commands.AutoAssignCommand) bool {
		return cmd.RequestID().IsEqual(id)
	})
}

func TestOrchestrator_OnCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("new pickup is assigned to the planned worker", func(t *testing.T) {
		request := newRequest(t)
		w := newWorker(t, "ravi")
		create := new(MockCreatePickupHandler)
		auto := new(MockAutoAssignHandler)
		create.On("Handle", ctx, mock.Anything).Return(request, nil).Once()
		auto.On("Handle", ctx, mock.MatchedBy(func(cmd commands.AutoAssignCommand) bool {
			return cmd.RequestID().IsEqual(request.ID()) && cmd.MaxAssignments() == 5
		})).Return(assignedResult(t, request, w), nil).Once()
		o := orchestrator.New(orchestrator.Handlers{CreatePickup: create, AutoAssign: auto}, orchestrator.Config{}, discard())

		got, err := o.OnCreate(ctx, details())

		require.NoError(t, err)
		assert.Equal(t, pickup.Assigned, got.Status())
		assert.True(t, got.IsAssignedTo(w.ID()))
		create.AssertExpectations(t)
		auto.AssertExpectations(t)
	})

	t.Run("assignment failure keeps the pickup waiting", func(t *testing.T) {
		request := newRequest(t)
		create := new(MockCreatePickupHandler)
		auto := new(MockAutoAssignHandler)
		create.On("Handle", ctx, mock.Anything).Return(request, nil).Once()
		auto.On("Handle", ctx, forRequest(request.ID())).
			Return(commands.AutoAssignResult{}, errors.New("db down")).Once()
		o := orchestrator.New(orchestrator.Handlers{CreatePickup: create, AutoAssign: auto}, orchestrator.Config{}, discard())

		got, err := o.OnCreate(ctx, details())

		require.NoError(t, err)
		assert.Equal(t, pickup.Pending, got.Status())
		assert.Nil(t, got.AssignedWorker())
	})

	t.Run("no worker found keeps the pickup waiting", func(t *testing.T) {
		request := newRequest(t)
		create := new(MockCreatePickupHandler)
		auto := new(MockAutoAssignHandler)
		create.On("Handle", ctx, mock.Anything).Return(request, nil).Once()
		auto.On("Handle", ctx, forRequest(request.ID())).Return(commands.AutoAssignResult{
			Request: request,
			Plan:    services.Plan{Trace: []services.TraceEvent{{Kind: services.TraceNoCandidates}}},
		}, nil).Once()
		o := orchestrator.New(orchestrator.Handlers{CreatePickup: create, AutoAssign: auto}, orchestrator.Config{}, discard())

		got, err := o.OnCreate(ctx, details())

		require.NoError(t, err)
		assert.Same(t, request, got)
		assert.False(t, got.IsAssigned())
	})

	t.Run("storage failure is returned and nothing is planned", func(t *testing.T) {
		create := new(MockCreatePickupHandler)
		auto := new(MockAutoAssignHandler)
		create.On("Handle", ctx, mock.Anything).Return(nil, assert.AnError).Once()
		o := orchestrator.New(orchestrator.Handlers{CreatePickup: create, AutoAssign: auto}, orchestrator.Config{}, discard())

		_, err := o.OnCreate(ctx, details())

		require.ErrorIs(t, err, assert.AnError)
		auto.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("missing requester is rejected before storage", func(t *testing.T) {
		create := new(MockCreatePickupHandler)
		o := orchestrator.New(orchestrator.Handlers{CreatePickup: create}, orchestrator.Config{}, discard())
		d := details()
		d.RequesterID = kernel.UUID{}

		_, err := o.OnCreate(ctx, d)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("assignee and status agree after every outcome", func(t *testing.T) {
		outcomes := map[string]func(r *pickup.Request) (commands.AutoAssignResult, error){
			"assigned": func(r *pickup.Request) (commands.AutoAssignResult, error) {
				return assignedResult(t, r, newWorker(t, "ravi")), nil
			},
			"no candidates": func(r *pickup.Request) (commands.AutoAssignResult, error) {
				return commands.AutoAssignResult{Request: r}, nil
			},
			"failed": func(*pickup.Request) (commands.AutoAssignResult, error) {
				return commands.AutoAssignResult{}, assert.AnError
			},
		}

		for name, outcome := range outcomes {
			request := newRequest(t)
			create := new(MockCreatePickupHandler)
			auto := new(MockAutoAssignHandler)
			create.On("Handle", ctx, mock.Anything).Return(request, nil).Once()
			result, err := outcome(request)
			auto.On("Handle", ctx, forRequest(request.ID())).Return(result, err).Once()
			o := orchestrator.New(orchestrator.Handlers{CreatePickup: create, AutoAssign: auto}, orchestrator.Config{}, discard())

			got, err := o.OnCreate(ctx, details())

			require.NoError(t, err, name)
			if got.AssignedWorker() == nil {
				assert.True(t, got.Status().IsAwaitingAssignment(), name)
				assert.True(t, got.IsAwaitingAssignment(), name)
			} else {
				assert.Equal(t, pickup.Assigned, got.Status(), name)
				assert.False(t, got.IsAwaitingAssignment(), name)
			}
		}
	})
}

func TestOrchestrator_AutoAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("worker lost before commit is excluded on the next attempt", func(t *testing.T) {
		request := newRequest(t)
		full := newWorker(t, "full")
		spare := newWorker(t, "spare")
		auto := new(MockAutoAssignHandler)
		mock.InOrder(
			auto.On("Handle", ctx, mock.MatchedBy(func(cmd commands.AutoAssignCommand) bool {
				return !cmd.IsExcluded(full.ID())
			})).Return(commands.AutoAssignResult{Plan: services.Plan{Worker: full}},
				fmt.Errorf("%w: worker %s has 5 assignments", services.ErrWorkerAtCapacity, full.ID())).Once(),
			auto.On("Handle", ctx, mock.MatchedBy(func(cmd commands.AutoAssignCommand) bool {
				return cmd.IsExcluded(full.ID()) && !cmd.IsExcluded(spare.ID())
			})).Return(assignedResult(t, request, spare), nil).Once(),
		)
		o := orchestrator.New(orchestrator.Handlers{AutoAssign: auto}, orchestrator.Config{}, discard())

		res, err := o.AutoAssign(ctx, request.ID())

		require.NoError(t, err)
		assert.True(t, res.Assigned())
		assert.True(t, res.Request.IsAssignedTo(spare.ID()))
		auto.AssertExpectations(t)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		request := newRequest(t)
		auto := new(MockAutoAssignHandler)
		auto.On("Handle", ctx, forRequest(request.ID())).
			Return(commands.AutoAssignResult{Plan: services.Plan{Worker: newWorker(t, "x")}}, commands.ErrWorkerUnavailable).
			Times(2)
		o := orchestrator.New(orchestrator.Handlers{AutoAssign: auto},
			orchestrator.Config{AutoAssignAttempts: 2}, discard())

		_, err := o.AutoAssign(ctx, request.ID())

		require.ErrorIs(t, err, commands.ErrWorkerUnavailable)
		auto.AssertNumberOfCalls(t, "Handle", 2)
	})

	t.Run("conflict is not retried", func(t *testing.T) {
		request := newRequest(t)
		auto := new(MockAutoAssignHandler)
		auto.On("Handle", ctx, forRequest(request.ID())).
			Return(commands.AutoAssignResult{}, errs.NewConflictError("pickup request", "taken")).Once()
		o := orchestrator.New(orchestrator.Handlers{AutoAssign: auto}, orchestrator.Config{}, discard())

		_, err := o.AutoAssign(ctx, request.ID())

		require.ErrorIs(t, err, errs.ErrConflict)
		auto.AssertNumberOfCalls(t, "Handle", 1)
	})

	t.Run("configured capacity reaches the command", func(t *testing.T) {
		request := newRequest(t)
		auto := new(MockAutoAssignHandler)
		auto.On("Handle", ctx, mock.MatchedBy(func(cmd commands.AutoAssignCommand) bool {
			return cmd.MaxAssignments() == 2
		})).Return(commands.AutoAssignResult{Request: request}, nil).Once()
		o := orchestrator.New(orchestrator.Handlers{AutoAssign: auto},
			orchestrator.Config{MaxAssignmentsPerWorker: 2}, discard())

		res, err := o.AutoAssign(ctx, request.ID())

		require.NoError(t, err)
		assert.False(t, res.Assigned())
		assert.Equal(t, 2, o.MaxAssignmentsPerWorker())
	})
}

func TestOrchestrator_AssignAllUnassigned(t *testing.T) {
	ctx := context.Background()

	t.Run("each request is handled independently", func(t *testing.T) {
		first, second, third := newRequest(t), newRequest(t), newRequest(t)
		w := newWorker(t, "ravi")
		list := new(MockUnassignedPickupsHandler)
		auto := new(MockAutoAssignHandler)
		list.On("Handle", ctx, mock.Anything).Return([]queries.PickupView{
			{ID: first.ID()}, {ID: second.ID()}, {ID: third.ID()},
		}, nil).Once()
		auto.On("Handle", ctx, forRequest(first.ID())).Return(commands.AutoAssignResult{}, errors.New("boom")).Once()
		auto.On("Handle", ctx, forRequest(second.ID())).Return(assignedResult(t, second, w), nil).Once()
		auto.On("Handle", ctx, forRequest(third.ID())).Return(commands.AutoAssignResult{Request: third}, nil).Once()
		o := orchestrator.New(orchestrator.Handlers{UnassignedPickups: list, AutoAssign: auto}, orchestrator.Config{}, discard())

		got, err := o.AssignAllUnassigned(ctx)

		require.NoError(t, err)
		assert.Equal(t, orchestrator.BulkResult{Total: 3, Assigned: 1}, got)
		auto.AssertExpectations(t)
	})

	t.Run("listing failure is returned", func(t *testing.T) {
		list := new(MockUnassignedPickupsHandler)
		list.On("Handle", ctx, mock.Anything).Return(nil, assert.AnError).Once()
		o := orchestrator.New(orchestrator.Handlers{UnassignedPickups: list}, orchestrator.Config{}, discard())

		_, err := o.AssignAllUnassigned(ctx)

		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		list := new(MockUnassignedPickupsHandler)
		auto := new(MockAutoAssignHandler)
		list.On("Handle", cancelled, mock.Anything).Return([]queries.PickupView{{ID: kernel.NewUUID()}}, nil).Once()
		o := orchestrator.New(orchestrator.Handlers{UnassignedPickups: list, AutoAssign: auto}, orchestrator.Config{}, discard())

		got, err := o.AssignAllUnassigned(cancelled)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, got.Total)
		auto.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestOrchestrator_Assign(t *testing.T) {
	ctx := context.Background()
	request := newRequest(t)
	w := newWorker(t, "ravi")
	assign := new(MockAssignWorkerHandler)
	assign.On("Handle", ctx, mock.MatchedBy(func(cmd commands.AssignWorkerCommand) bool {
		return cmd.RequestID().IsEqual(request.ID()) && cmd.WorkerID().IsEqual(w.ID())
	})).Return(request, nil).Once()
	o := orchestrator.New(orchestrator.Handlers{AssignWorker: assign}, orchestrator.Config{}, discard())

	got, err := o.Assign(ctx, request.ID(), w.ID())
	require.NoError(t, err)
	assert.Same(t, request, got)

	_, err = o.Assign(ctx, request.ID(), kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assign.AssertNumberOfCalls(t, "Handle", 1)
}

func TestOrchestrator_WorkerLoad(t *testing.T) {
	ctx := context.Background()
	workerID := kernel.NewUUID()
	count := new(MockAssignmentCountHandler)
	availability := new(MockWorkerAvailabilityHandler)
	count.On("Handle", ctx, mock.Anything).
		Return(queries.GetAssignmentCountQueryResponse{WorkerID: workerID, Count: 4}, nil).Once()
	availability.On("Handle", ctx, mock.MatchedBy(func(q queries.GetWorkerAvailabilityQuery) bool {
		return q.WorkerID().IsEqual(workerID) && q.MaxAssignments() == 5
	})).Return(queries.GetWorkerAvailabilityQueryResponse{Assignments: 4, MaxAssignments: 5, Available: true}, nil).Once()
	o := orchestrator.New(orchestrator.Handlers{AssignmentCount: count, WorkerAvailability: availability},
		orchestrator.Config{}, discard())

	n, err := o.AssignmentCount(ctx, workerID)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	ok, err := o.IsAvailable(ctx, workerID, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = o.IsAvailable(ctx, workerID, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	availability.AssertNumberOfCalls(t, "Handle", 1)
}
