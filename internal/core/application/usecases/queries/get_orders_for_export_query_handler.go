package queries

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// GetOrdersForExportQueryHandler loads a tenant's orders through the order
// repository. Export serializes the full aggregate, so the read path reuses
// the repository's DTO-to-domain mapping instead of a raw projection.
type GetOrdersForExportQueryHandler struct {
	orderRepository ports.OrderRepository
}

// NewGetOrdersForExportQueryHandler creates a handler for export queries.
func NewGetOrdersForExportQueryHandler(orderRepository ports.OrderRepository) GetOrdersForExportQueryHandler {
	return GetOrdersForExportQueryHandler{orderRepository: orderRepository}
}

// Handle returns all orders of the query's tenant ordered by creation time.
func (h GetOrdersForExportQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForExportQuery,
) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.orderRepository.GetAllForTenant(ctx, query.TenantID())
}
