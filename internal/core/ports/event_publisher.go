package ports

import (
	"context"

	"storefront/internal/core/domain/events"
)

// EventPublisher delivers domain events to downstream consumers (audit log,
// notifications, webhooks). Delivery is at-least-once; consumers deduplicate
// by event id.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
