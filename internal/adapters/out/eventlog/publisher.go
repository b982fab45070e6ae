// Package eventlog publishes domain events to the structured application log.
//
// It is the default EventPublisher binding: every dispatched event is emitted
// as one slog record carrying the full event envelope, which downstream log
// shippers forward to the audit pipeline. Swapping in a broker-backed
// publisher only requires another ports.EventPublisher implementation.
package eventlog

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/events"
	"storefront/internal/core/ports"
)

// SlogEventPublisher writes domain events to a slog.Logger.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates a publisher that emits events on the given logger.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	return &SlogEventPublisher{
		logger: logger.With("component", "event_publisher"),
	}
}

var _ ports.EventPublisher = (*SlogEventPublisher)(nil)

// Publish emits the event as a single structured log record. It never fails;
// the error return exists to satisfy publishers with real delivery semantics.
func (p *SlogEventPublisher) Publish(ctx context.Context, event events.Event) error {
	attrs := []any{
		"event_id", event.EventID,
		"event_type", event.EventType,
		"tenant_id", event.TenantID.String(),
		"order_id", event.OrderID.String(),
		"order_number", event.OrderNumber,
		"timestamp", event.Timestamp,
		"data", event.Data,
	}
	if event.Metadata != nil {
		attrs = append(attrs, "metadata", event.Metadata)
	}

	p.logger.InfoContext(ctx, "Domain event published", attrs...)
	return nil
}
