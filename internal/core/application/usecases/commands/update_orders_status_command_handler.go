package commands

import (
	"context"

	"storefront/internal/core/domain/events"
	"storefront/internal/core/domain/model/order"
)

// UpdateOrdersStatusCommandHandler moves a set of orders to a common target
// status inside one transaction. Each order goes through the lifecycle
// mutation for the target (Cancel, Refund, MarkShipped, ...), so an illegal
// transition on any order aborts and rolls back the whole batch.
type UpdateOrdersStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateOrdersStatusCommandHandler creates a handler for bulk status changes.
func NewUpdateOrdersStatusCommandHandler(uowFactory UoWFactory) UpdateOrdersStatusCommandHandler {
	return UpdateOrdersStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bulk status change. For every order it applies the
// matching lifecycle mutation, persists the result, and records the matching
// domain event in the outbox; everything commits or rolls back together.
func (h *UpdateOrdersStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrdersStatusCommand) error {
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

	for _, id := range cmd.OrderIDs() {
		aggregate, err := orderRepo.Get(ctx, cmd.TenantID(), id)
		if err != nil {
			return err
		}

		// Already in the target status: retried bulk requests stay idempotent.
		if aggregate.Status() == cmd.Status() {
			continue
		}

		event, err := transition(aggregate, cmd.Status(), cmd.ActorID())
		if err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err = eventRepo.Add(ctx, event); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// transition applies the lifecycle mutation for the target status and builds
// the matching domain event.
func transition(aggregate *order.Order, target order.Status, actorID string) (events.Event, error) {
	previous := aggregate.Status()

	var err error
	switch target {
	case order.Paid:
		err = aggregate.MarkPaid("", actorID)
		if err == nil {
			return events.NewPaymentProcessedEvent(aggregate, "", aggregate.Payment().AmountPaid(), nil), nil
		}
	case order.Shipped:
		err = aggregate.MarkShipped("", actorID)
		if err == nil {
			return events.NewOrderShippedEvent(aggregate, trackingOrEmpty(aggregate), nil), nil
		}
	case order.Delivered:
		err = aggregate.MarkDelivered(actorID)
		if err == nil {
			return events.NewOrderDeliveredEvent(aggregate, nil), nil
		}
	case order.Cancelled:
		err = aggregate.Cancel(actorID, "bulk status update")
		if err == nil {
			return events.NewOrderCancelledEvent(aggregate, "bulk status update", actorID, nil), nil
		}
	case order.Refunded:
		err = aggregate.Refund(actorID, "bulk status update")
		if err == nil {
			return events.NewOrderRefundedEvent(aggregate, aggregate.Total(), "bulk status update", nil), nil
		}
	default:
		err = aggregate.ChangeStatus(target, actorID, "bulk status update")
		if err == nil {
			return events.NewOrderStatusChangedEvent(aggregate, previous, target, actorID, "bulk status update", nil), nil
		}
	}

	return events.Event{}, err
}

func trackingOrEmpty(aggregate *order.Order) string {
	if t := aggregate.Shipping().TrackingNumber(); t != nil {
		return *t
	}
	return ""
}
