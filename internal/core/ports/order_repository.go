// Package ports defines repository and publisher interfaces for the order
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read and write is scoped to a single tenant; an order belonging to
// another tenant is indistinguishable from a missing one.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier within the tenant.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-facing order number,
	// which is unique within the tenant.
	GetByNumber(ctx context.Context, tenantID kernel.UUID, orderNumber string) (*order.Order, error)

	// GetByIdempotencyKey retrieves the order previously created with the
	// given idempotency key. Used to collapse duplicate creation requests
	// into a no-op. Returns an error satisfying errors.Is(err,
	// errs.ErrObjectNotFound) when no order carries the key.
	GetByIdempotencyKey(ctx context.Context, tenantID kernel.UUID, key string) (*order.Order, error)

	// GetAllForTenant retrieves every order belonging to the tenant,
	// ordered by creation time. Used by the export query.
	GetAllForTenant(ctx context.Context, tenantID kernel.UUID) ([]*order.Order, error)

	// Delete removes an order from storage. Deleting an order that does not
	// exist within the tenant is an error.
	Delete(ctx context.Context, tenantID, id kernel.UUID) error
}
