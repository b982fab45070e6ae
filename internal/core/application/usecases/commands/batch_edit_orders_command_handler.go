package commands

import (
	"context"

	"storefront/internal/core/domain/events"
)

// BatchEditOrdersCommandHandler applies a sparse patch to every listed order
// inside one transaction. A patch that changes an order's status records an
// ORDER_STATUS_CHANGED event for that order.
type BatchEditOrdersCommandHandler struct {
	uowFactory UoWFactory
}

// NewBatchEditOrdersCommandHandler creates a handler for batch edits.
func NewBatchEditOrdersCommandHandler(uowFactory UoWFactory) BatchEditOrdersCommandHandler {
	return BatchEditOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch edit. Every listed order is loaded, patched, and
// persisted; the batch commits or rolls back as a whole, so a failed patch on
// one order leaves the rest untouched.
func (h *BatchEditOrdersCommandHandler) Handle(ctx context.Context, cmd BatchEditOrdersCommand) error {
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
	eventRepo := uow.EventRepository()
	patch := cmd.Patch()

	for _, id := range cmd.OrderIDs() {
		aggregate, err := orderRepo.Get(ctx, cmd.TenantID(), id)
		if err != nil {
			return err
		}

		previous := aggregate.Status()
		if err = aggregate.ApplyPatch(patch, cmd.ActorID()); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if current := aggregate.Status(); current != previous {
			event := events.NewOrderStatusChangedEvent(
				aggregate, previous, current, cmd.ActorID(), "batch edit", nil,
			)
			if err = eventRepo.Add(ctx, event); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
