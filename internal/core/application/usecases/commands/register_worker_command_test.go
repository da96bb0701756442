package commands_test

import (
	"context"
	"testing"

	"ewaste/internal/core/application/usecases/commands"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterWorkerCommand(t *testing.T) {
	t.Run("username is required", func(t *testing.T) {
		_, err := commands.NewRegisterWorkerCommand(kernel.NewUUID(), worker.Profile{}, kernel.Address{}, nil, true)

		require.ErrorIs(t, err, worker.ErrUsernameIsRequired)
	})

	t.Run("valid input", func(t *testing.T) {
		loc, err := kernel.NewGeoPoint(18.5204, 73.8567)
		require.NoError(t, err)

		cmd, err := commands.NewRegisterWorkerCommand(kernel.NewUUID(), worker.Profile{Username: "ravi"},
			kernel.NewAddress("", "Pune", "MH", "411001"), &loc, false)

		require.NoError(t, err)
		assert.Equal(t, "ravi", cmd.Profile().Username)
		assert.Equal(t, "411001", cmd.Address().Pincode)
		assert.Same(t, &loc, cmd.Location())
		assert.False(t, cmd.Available())
	})
}

func TestRegisterWorkerCommand_HandlerHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("stores worker with requested availability", func(t *testing.T) {
		f := newFixture()
		cmd, err := commands.NewRegisterWorkerCommand(kernel.NewUUID(), worker.Profile{Username: "ravi"},
			kernel.NewAddress("", "Pune", "MH", "411001"), nil, false)
		require.NoError(t, err)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil).Once(),
			f.workers.On("Add", ctx, mock.MatchedBy(func(w *worker.Worker) bool {
				return w.Username() == "ravi" && !w.IsAvailable()
			})).Return(nil).Once(),
			f.uow.On("Commit", ctx).Return(nil).Once(),
			f.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockWorkerUoWFactory)
		factory.On("Create").Return(f.uow).Once()

		got, err := commands.NewRegisterWorkerCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, cmd.WorkerID(), got.ID())
		f.assertExpectations(t)
	})

	t.Run("taken username surfaces as conflict", func(t *testing.T) {
		f := newFixture()
		cmd, err := commands.NewRegisterWorkerCommand(kernel.NewUUID(), worker.Profile{Username: "ravi"},
			kernel.Address{}, nil, true)
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil).Once()
		f.workers.On("Add", ctx, mock.Anything).Return(errs.NewConflictError("worker", "username ravi is taken")).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockWorkerUoWFactory)
		factory.On("Create").Return(f.uow).Once()

		_, err = commands.NewRegisterWorkerCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		f.assertExpectations(t)
	})
}
