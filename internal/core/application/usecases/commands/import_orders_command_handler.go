package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/events"
	"storefront/internal/pkg/errs"
)

// ImportOrdersResult reports what an import run did: how many orders were
// patched, and the order numbers that matched nothing in the tenant. Missing
// numbers are reported, not treated as failures, so one stale row in a large
// file does not discard the rest.
type ImportOrdersResult struct {
	UpdatedCount        int
	MissingOrderNumbers []string
}

// ImportOrdersCommandHandler applies validated import patches to existing
// orders, matched by order number within the tenant.
type ImportOrdersCommandHandler struct {
	uowFactory UoWFactory
}

// NewImportOrdersCommandHandler creates a handler for order imports.
func NewImportOrdersCommandHandler(uowFactory UoWFactory) ImportOrdersCommandHandler {
	return ImportOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the import. Patches whose order number matches nothing are
// collected into the result; every applied patch persists in one transaction,
// with an ORDER_STATUS_CHANGED event recorded when a patch moved an order's
// status.
func (h *ImportOrdersCommandHandler) Handle(ctx context.Context, cmd ImportOrdersCommand) (ImportOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return ImportOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ImportOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	eventRepo := uow.EventRepository()

	var result ImportOrdersResult
	for _, patch := range cmd.Patches() {
		aggregate, err := orderRepo.GetByNumber(ctx, cmd.TenantID(), patch.OrderNumber)
		if errors.Is(err, errs.ErrObjectNotFound) {
			result.MissingOrderNumbers = append(result.MissingOrderNumbers, patch.OrderNumber)
			continue
		}
		if err != nil {
			return ImportOrdersResult{}, err
		}

		previous := aggregate.Status()
		if err = aggregate.ApplyPatch(patch, cmd.ActorID()); err != nil {
			return ImportOrdersResult{}, err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return ImportOrdersResult{}, err
		}

		if current := aggregate.Status(); current != previous {
			event := events.NewOrderStatusChangedEvent(
				aggregate, previous, current, cmd.ActorID(), "csv import", nil,
			)
			if err = eventRepo.Add(ctx, event); err != nil {
				return ImportOrdersResult{}, err
			}
		}

		result.UpdatedCount++
	}

	if err := uow.Commit(ctx); err != nil {
		return ImportOrdersResult{}, err
	}
	return result, nil
}
