package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	tenantID := kernel.NewUUID()
	cmd := fixtureCreateOrderCommand(t, tenantID)

	assert.Equal(t, tenantID, cmd.TenantID())
	assert.Equal(t, "ORD-1042", cmd.OrderNumber())
	assert.Equal(t, "idem-1042", cmd.IdempotencyKey())
	assert.Equal(t, "web", cmd.Source())
	assert.Len(t, cmd.Items(), 1)
	require.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_InvalidTenantID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.UUID{},
		"ORD-1", "idem-1",
		fixtureCustomer(t), fixtureItems(t),
		mustMoney(t, "1"), mustMoney(t, "0"), mustMoney(t, "1"),
		fixturePayment(t), fixtureShipping(t),
		"web",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyOrderNumber(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"", "idem-1",
		fixtureCustomer(t), fixtureItems(t),
		mustMoney(t, "1"), mustMoney(t, "0"), mustMoney(t, "1"),
		fixturePayment(t), fixtureShipping(t),
		"web",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderNumberIsRequired)
}

func TestNewCreateOrderCommand_EmptyIdempotencyKey(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"ORD-1", "",
		fixtureCustomer(t), fixtureItems(t),
		mustMoney(t, "1"), mustMoney(t, "0"), mustMoney(t, "1"),
		fixturePayment(t), fixtureShipping(t),
		"web",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrIdempotencyKeyIsRequired)
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"ORD-1", "idem-1",
		fixtureCustomer(t), []order.Item{},
		mustMoney(t, "1"), mustMoney(t, "0"), mustMoney(t, "1"),
		fixturePayment(t), fixtureShipping(t),
		"web",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	require.Error(t, cmd.Validate())
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
