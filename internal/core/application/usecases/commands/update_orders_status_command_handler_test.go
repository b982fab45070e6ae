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

func TestNewUpdateOrdersStatusCommand(t *testing.T) {
	t.Run("should require at least one order id", func(t *testing.T) {
		_, err := commands.NewUpdateOrdersStatusCommand(kernel.NewUUID(), nil, order.Cancelled, "user-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrOrderIDsAreRequired)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateOrdersStatusCommand(
			kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()}, order.Status(99), "user-1")

		require.Error(t, err)
	})
}

func TestUpdateOrdersStatusCommandHandler_Handle_Cancel(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	target := fixtureOrder(t, tenantID)
	cmd, err := commands.NewUpdateOrdersStatusCommand(
		tenantID, []kernel.UUID{target.ID()}, order.Cancelled, "user-1")
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
			return e.EventType == events.OrderCancelled
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrdersStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, target.Status())
	repo.AssertExpectations(t)
	eventRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrdersStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	target := fixtureOrder(t, tenantID)
	// PENDING orders have no completed payment, so a refund must be rejected.
	cmd, err := commands.NewUpdateOrdersStatusCommand(
		tenantID, []kernel.UUID{target.ID()}, order.Refunded, "user-1")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	eventRepo := new(MockEventRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		uow.On("EventRepository").Return(eventRepo).Once(),
		repo.On("Get", mock.Anything, tenantID, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrdersStatusCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateOrdersStatusCommandHandler_Handle_AlreadyInTarget(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	target := fixtureOrder(t, tenantID) // already PENDING
	cmd, err := commands.NewUpdateOrdersStatusCommand(
		tenantID, []kernel.UUID{target.ID()}, order.Pending, "user-1")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	eventRepo := new(MockEventRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		uow.On("EventRepository").Return(eventRepo).Once(),
		repo.On("Get", mock.Anything, tenantID, target.ID()).Return(target, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrdersStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	eventRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
