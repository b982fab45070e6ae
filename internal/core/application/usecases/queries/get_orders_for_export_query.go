package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetOrdersForExportQueryIsNotConstructed = errors.New(
	"GetOrdersForExportQuery must be created via NewGetOrdersForExportQuery constructor",
)

// GetOrdersForExportQuery retrieves every order of a tenant for tabular export.
// The export path needs fully rehydrated aggregates (items, payment, shipping,
// notes), so the handler loads domain orders rather than a projection.
//
// Example:
//
//	query, err := NewGetOrdersForExportQuery(tenantID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load orders for export: %w", err)
//	}
type GetOrdersForExportQuery struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersForExportQuery creates an export query scoped to one tenant.
func NewGetOrdersForExportQuery(tenantID kernel.UUID) (GetOrdersForExportQuery, error) {
	query := GetOrdersForExportQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setTenantID(tenantID); err != nil {
		return GetOrdersForExportQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersForExportQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForExportQueryIsNotConstructed)
}

// TenantID returns the tenant whose orders are exported.
func (q GetOrdersForExportQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q *GetOrdersForExportQuery) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	q.tenantID = tenantID
	return nil
}
