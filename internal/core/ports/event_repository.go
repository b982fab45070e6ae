package ports

import (
	"context"

	"storefront/internal/core/domain/events"
)

// EventRepository is the transactional outbox for domain events. Events are
// stored in the same transaction as the order mutation that produced them and
// relayed to the publisher asynchronously, so a crash between commit and
// dispatch never loses an event.
type EventRepository interface {
	// Add stores a domain event as pending dispatch.
	Add(ctx context.Context, event events.Event) error

	// GetPending retrieves up to limit events that have not yet been
	// dispatched, oldest first.
	GetPending(ctx context.Context, limit int) ([]events.Event, error)

	// MarkSent records that an event was successfully handed to the publisher.
	MarkSent(ctx context.Context, eventID string) error

	// MarkFailed records a dispatch failure and its cause; the event stays
	// eligible for retry.
	MarkFailed(ctx context.Context, eventID string, cause error) error
}
