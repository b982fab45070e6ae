package commands_test

import (
	"context"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/events"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, tenantID kernel.UUID, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetByIdempotencyKey(ctx context.Context, tenantID kernel.UUID, key string) (*order.Order, error) {
	args := m.Called(ctx, tenantID, key)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllForTenant(ctx context.Context, tenantID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Add(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetPending(ctx context.Context, limit int) ([]events.Event, error) {
	args := m.Called(ctx, limit)
	if e := args.Get(0); e != nil {
		return e.([]events.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) MarkSent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventRepository) MarkFailed(ctx context.Context, eventID string, cause error) error {
	args := m.Called(ctx, eventID, cause)
	return args.Error(0)
}

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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// Fixtures shared by the command tests.

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, "USD")
	require.NoError(t, err)
	return m
}

func fixtureCustomer(t *testing.T) order.Customer {
	t.Helper()
	customer, err := order.NewCustomer("Ada Lovelace", "ada@example.com", "+1-555-0101", false)
	require.NoError(t, err)
	return customer
}

func fixtureItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("prod-1", "Widget", 2, mustMoney(t, "19.99"))
	require.NoError(t, err)
	return []order.Item{item}
}

func fixturePayment(t *testing.T) order.Payment {
	t.Helper()
	payment, err := order.NewPayment(order.Card, order.PaymentPending, mustMoney(t, "0"), nil)
	require.NoError(t, err)
	return payment
}

func fixtureShipping(t *testing.T) order.Shipping {
	t.Helper()
	shipping, err := order.NewShipping(order.Standard, order.Address{
		Line1: "12 Crunch St", City: "Austin", Country: "US",
	}, mustMoney(t, "5.00"), nil)
	require.NoError(t, err)
	return shipping
}

func fixtureCreateOrderCommand(t *testing.T, tenantID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), tenantID,
		"ORD-1042", "idem-1042",
		fixtureCustomer(t), fixtureItems(t),
		mustMoney(t, "39.98"), mustMoney(t, "3.20"), mustMoney(t, "48.18"),
		fixturePayment(t), fixtureShipping(t),
		"web",
	)
	require.NoError(t, err)
	return cmd
}

func fixtureOrder(t *testing.T, tenantID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), tenantID,
		"ORD-1042", "idem-1042",
		fixtureCustomer(t), fixtureItems(t),
		mustMoney(t, "39.98"), mustMoney(t, "3.20"), mustMoney(t, "48.18"),
		fixturePayment(t), fixtureShipping(t),
		"web",
	)
	require.NoError(t, err)
	return o
}
