package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/events"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewBatchEditOrdersCommand(t *testing.T) {
	t.Run("should reject an empty patch", func(t *testing.T) {
		_, err := commands.NewBatchEditOrdersCommand(
			kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()}, order.Patch{}, "user-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrPatchIsEmpty)
	})

	t.Run("should reject an empty id list", func(t *testing.T) {
		notes := "updated"
		_, err := commands.NewBatchEditOrdersCommand(
			kernel.NewUUID(), nil, order.Patch{Notes: &notes}, "user-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrOrderIDsAreRequired)
	})
}

func TestBatchEditOrdersCommandHandler_Handle(t *testing.T) {
	t.Run("should patch every order and record status events", func(t *testing.T) {
		ctx := t.Context()
		tenantID := kernel.NewUUID()
		target := fixtureOrder(t, tenantID)
		status := order.Paid
		cmd, err := commands.NewBatchEditOrdersCommand(
			tenantID, []kernel.UUID{target.ID()}, order.Patch{Status: &status}, "user-1")
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		eventRepo := new(MockEventRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			uow.On("EventRepository").Return(eventRepo).Once(),
			repo.On("Get", mock.Anything, tenantID, target.ID()).Return(target, nil).Once(),
			repo.On("Update", mock.Anything, target).Return(nil).Once(),
			eventRepo.On("Add", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
				return e.EventType == events.OrderStatusChanged &&
					e.Data["previous_status"] == "PENDING" &&
					e.Data["new_status"] == "PAID"
			})).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewBatchEditOrdersCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, order.Paid, target.Status())
		repo.AssertExpectations(t)
		eventRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should not record an event when status is untouched", func(t *testing.T) {
		ctx := t.Context()
		tenantID := kernel.NewUUID()
		target := fixtureOrder(t, tenantID)
		notes := "gift wrap"
		cmd, err := commands.NewBatchEditOrdersCommand(
			tenantID, []kernel.UUID{target.ID()}, order.Patch{Notes: &notes}, "user-1")
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		eventRepo := new(MockEventRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			uow.On("EventRepository").Return(eventRepo).Once(),
			repo.On("Get", mock.Anything, tenantID, target.ID()).Return(target, nil).Once(),
			repo.On("Update", mock.Anything, target).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewBatchEditOrdersCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, "gift wrap", target.Notes())
		eventRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})
}
