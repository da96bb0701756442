package commands_test

import (
	"context"
	"testing"

	"ewaste/internal/core/application/usecases/commands"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkReachedCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("assignee marks reached without a log", func(t *testing.T) {
		f := newFixture()
		w := newWorker(t, "ravi")
		request := newAssignedRequest(t, w)
		cmd, err := commands.NewMarkReachedCommand(request.ID(), w.ID())
		require.NoError(t, err)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil).Once(),
			f.pickups.On("GetForUpdate", ctx, request.ID()).Return(request, nil).Once(),
			f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once(),
			f.pickups.On("Update", ctx, request).Return(nil).Once(),
			f.uow.On("Commit", ctx).Return(nil).Once(),
			f.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockLifecycleUoWFactory)
		factory.On("Create").Return(f.uow).Once()

		got, err := commands.NewMarkReachedCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, pickup.TrackingReached, got.TrackingStatus())
		assert.Equal(t, pickup.Assigned, got.Status())
		f.uow.AssertNotCalled(t, "PickupLogRepository")
		f.assertExpectations(t)
	})

	t.Run("another worker is a conflict", func(t *testing.T) {
		f := newFixture()
		request := newAssignedRequest(t, newWorker(t, "ravi"))
		stranger := newWorker(t, "meera")
		cmd, err := commands.NewMarkReachedCommand(request.ID(), stranger.ID())
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil).Once()
		f.pickups.On("GetForUpdate", ctx, request.ID()).Return(request, nil).Once()
		f.workers.On("Get", ctx, stranger.ID()).Return(stranger, nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockLifecycleUoWFactory)
		factory.On("Create").Return(f.uow).Once()

		_, err = commands.NewMarkReachedCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, pickup.TrackingAssigned, request.TrackingStatus())
	})

	t.Run("unknown worker is not found", func(t *testing.T) {
		f := newFixture()
		request := newAssignedRequest(t, newWorker(t, "ravi"))
		unknown := kernel.NewUUID()
		cmd, err := commands.NewMarkReachedCommand(request.ID(), unknown)
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil).Once()
		f.pickups.On("GetForUpdate", ctx, request.ID()).Return(request, nil).Once()
		f.workers.On("Get", ctx, unknown).Return(nil, errs.NewObjectNotFoundError("worker", unknown)).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockLifecycleUoWFactory)
		factory.On("Create").Return(f.uow).Once()

		_, err = commands.NewMarkReachedCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, pickup.TrackingAssigned, request.TrackingStatus())
		f.pickups.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
