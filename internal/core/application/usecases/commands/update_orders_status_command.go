package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrUpdateOrdersStatusCommandIsNotConstructed = errors.New(
		"UpdateOrdersStatusCommand must be created via NewUpdateOrdersStatusCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// UpdateOrdersStatusCommand represents a bulk status change: every listed
// order of the tenant should move to the same target status. The handler
// routes each order through the lifecycle mutation matching the target, so
// the state-machine guards (cancellable, refundable, shippable) apply
// per order.
type UpdateOrdersStatusCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	orderIDs []kernel.UUID
	status   order.Status
	actorID  string

	guard guard.ConstructorGuard
}

// NewUpdateOrdersStatusCommand creates a bulk status change command.
// Validates the tenant id, a non-empty id list, and the target status.
func NewUpdateOrdersStatusCommand(
	tenantID kernel.UUID,
	orderIDs []kernel.UUID,
	status order.Status,
	actorID string,
) (UpdateOrdersStatusCommand, error) {
	cmd := UpdateOrdersStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderIDs(orderIDs),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrdersStatusCommand{}, err
	}

	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrdersStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrdersStatusCommandIsNotConstructed)
}

// TenantID returns the tenant scope for the bulk operation.
func (c UpdateOrdersStatusCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderIDs returns the orders to update.
func (c UpdateOrdersStatusCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Status returns the target status.
func (c UpdateOrdersStatusCommand) Status() order.Status {
	return c.status
}

// ActorID returns the id of the user performing the change, if known.
func (c UpdateOrdersStatusCommand) ActorID() string {
	return c.actorID
}

func (c *UpdateOrdersStatusCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *UpdateOrdersStatusCommand) setOrderIDs(orderIDs []kernel.UUID) error {
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

func (c *UpdateOrdersStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
