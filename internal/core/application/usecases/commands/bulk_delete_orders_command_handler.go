package commands

import (
	"context"
)

// BulkDeleteOrdersCommandHandler removes a set of orders inside one
// transaction: either every listed order is deleted or none is.
type BulkDeleteOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewBulkDeleteOrdersCommandHandler creates a handler for bulk deletions.
// Deletion records no domain events, so an OrderUoWFactory suffices.
func NewBulkDeleteOrdersCommandHandler(uowFactory OrderUoWFactory) BulkDeleteOrdersCommandHandler {
	return BulkDeleteOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bulk deletion. A missing order aborts and rolls back
// the whole batch rather than being skipped silently.
func (h *BulkDeleteOrdersCommandHandler) Handle(ctx context.Context, cmd BulkDeleteOrdersCommand) error {
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
	for _, id := range cmd.OrderIDs() {
		if err := orderRepo.Delete(ctx, cmd.TenantID(), id); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
