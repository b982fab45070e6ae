// Package events provides the domain event factory for the order lifecycle.
// Each factory function builds exactly one immutable event record from an Order
// snapshot plus transition-specific metadata. The factories are stateless and
// have no side effects beyond constructing the record: dispatch, persistence
// and deduplication are the caller's responsibility.
package events

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/oklog/ulid/v2"
)

// Event type tags. One per lifecycle transition kind.
const (
	OrderCreated       = "ORDER_CREATED"
	OrderStatusChanged = "ORDER_STATUS_CHANGED"
	PaymentProcessed   = "PAYMENT_PROCESSED"
	OrderShipped       = "ORDER_SHIPPED"
	OrderDelivered     = "ORDER_DELIVERED"
	OrderCancelled     = "ORDER_CANCELLED"
	OrderRefunded      = "ORDER_REFUNDED"
)

// Event is an immutable record of a fact that happened to an order. It is
// produced here and consumed by an external event bus, audit log or
// notification dispatcher; ownership passes to the caller that persists or
// dispatches it.
//
// EventID is a ULID: unique and lexicographically sortable by creation time, so
// downstream consumers get a usable ordering hint without this package holding
// shared counter state. Events created in the same call burst may still carry
// identical wall-clock timestamps; callers needing a strict total order must
// impose their own sequence.
//
// Metadata is nil when the caller supplied none. Downstream consumers branch on
// presence, so an omitted map is never replaced with an empty one.
type Event struct {
	EventType   string
	EventID     string
	Timestamp   time.Time
	TenantID    kernel.UUID
	OrderID     kernel.UUID
	OrderNumber string
	Data        map[string]any
	Metadata    map[string]any
}

// newEvent stamps the header fields shared by every event kind.
func newEvent(eventType string, o *order.Order, data map[string]any, metadata map[string]any) Event {
	return Event{
		EventType:   eventType,
		EventID:     ulid.Make().String(),
		Timestamp:   time.Now(),
		TenantID:    o.TenantID(),
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		Data:        data,
		Metadata:    metadata,
	}
}

// NewOrderCreatedEvent records the creation of an order with a summary of what
// was created: status, totals and customer contact for downstream notification.
func NewOrderCreatedEvent(o *order.Order, metadata map[string]any) Event {
	return newEvent(OrderCreated, o, map[string]any{
		"status":         o.Status().String(),
		"total_amount":   o.Total().AmountString(),
		"currency":       o.Total().Currency(),
		"customer_email": o.Customer().Email(),
		"item_count":     o.TotalItems(),
		"source":         o.Source(),
	}, metadata)
}

// NewOrderStatusChangedEvent records a lifecycle transition from previousStatus
// to newStatus. Actor and note are optional and omitted from the payload when empty.
func NewOrderStatusChangedEvent(o *order.Order, previousStatus, newStatus order.Status, actorID, note string, metadata map[string]any) Event {
	data := map[string]any{
		"previous_status": previousStatus.String(),
		"new_status":      newStatus.String(),
	}
	if actorID != "" {
		data["actor_id"] = actorID
	}
	if note != "" {
		data["note"] = note
	}
	return newEvent(OrderStatusChanged, o, data, metadata)
}

// NewPaymentProcessedEvent records a completed payment capture.
func NewPaymentProcessedEvent(o *order.Order, transactionID string, amount kernel.Money, metadata map[string]any) Event {
	return newEvent(PaymentProcessed, o, map[string]any{
		"transaction_id": transactionID,
		"amount":         amount.AmountString(),
		"currency":       amount.Currency(),
		"payment_method": o.Payment().Method().String(),
	}, metadata)
}

// NewOrderShippedEvent records the carrier handoff with its tracking number.
func NewOrderShippedEvent(o *order.Order, trackingNumber string, metadata map[string]any) Event {
	return newEvent(OrderShipped, o, map[string]any{
		"tracking_number": trackingNumber,
		"shipping_method": o.Shipping().Method().String(),
	}, metadata)
}

// NewOrderDeliveredEvent records delivery to the customer.
func NewOrderDeliveredEvent(o *order.Order, metadata map[string]any) Event {
	return newEvent(OrderDelivered, o, map[string]any{
		"customer_email": o.Customer().Email(),
	}, metadata)
}

// NewOrderCancelledEvent records a cancellation with its reason.
func NewOrderCancelledEvent(o *order.Order, reason, actorID string, metadata map[string]any) Event {
	data := map[string]any{
		"reason": reason,
	}
	if actorID != "" {
		data["actor_id"] = actorID
	}
	return newEvent(OrderCancelled, o, data, metadata)
}

// NewOrderRefundedEvent records a refund of the given amount with its reason.
func NewOrderRefundedEvent(o *order.Order, amount kernel.Money, reason string, metadata map[string]any) Event {
	return newEvent(OrderRefunded, o, map[string]any{
		"amount":   amount.AmountString(),
		"currency": amount.Currency(),
		"reason":   reason,
	}, metadata)
}
