package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrBulkDeleteOrdersCommandIsNotConstructed = errors.New(
	"BulkDeleteOrdersCommand must be created via NewBulkDeleteOrdersCommand constructor",
)

// BulkDeleteOrdersCommand removes a set of orders from a tenant. Deletion is
// permanent; the handler does not record domain events for deleted orders.
type BulkDeleteOrdersCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkDeleteOrdersCommand creates a bulk delete command.
// Validates the tenant id and a non-empty, well-formed id list.
func NewBulkDeleteOrdersCommand(tenantID kernel.UUID, orderIDs []kernel.UUID) (BulkDeleteOrdersCommand, error) {
	cmd := BulkDeleteOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderIDs(orderIDs),
	); err != nil {
		return BulkDeleteOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkDeleteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkDeleteOrdersCommandIsNotConstructed)
}

// TenantID returns the tenant scope for the deletion.
func (c BulkDeleteOrdersCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderIDs returns the orders to delete.
func (c BulkDeleteOrdersCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

func (c *BulkDeleteOrdersCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *BulkDeleteOrdersCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}
