package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/events"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Enforces idempotency: a command whose (tenant, idempotency key) pair
// already produced an order is a successful no-op, so callers can retry
// safely after timeouts without duplicating orders.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory so the new order and its ORDER_CREATED event commit atomically.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command. Looks up the idempotency key
// first; if an order already exists for it, returns nil without touching
// anything. Otherwise persists the new aggregate and records an
// ORDER_CREATED event in the same transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.GetByIdempotencyKey(ctx, cmd.TenantID(), cmd.IdempotencyKey())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.TenantID(),
		cmd.OrderNumber(),
		cmd.IdempotencyKey(),
		cmd.Customer(),
		cmd.Items(),
		cmd.Subtotal(),
		cmd.Tax(),
		cmd.Total(),
		cmd.Payment(),
		cmd.Shipping(),
		cmd.Source(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.EventRepository().Add(ctx, events.NewOrderCreatedEvent(aggregate, nil)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
