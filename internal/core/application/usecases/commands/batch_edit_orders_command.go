package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrBatchEditOrdersCommandIsNotConstructed = errors.New(
		"BatchEditOrdersCommand must be created via NewBatchEditOrdersCommand constructor",
	)
	ErrPatchIsEmpty = errors.New("patch carries no fields to apply")
)

// BatchEditOrdersCommand applies one sparse field patch to many orders of a
// tenant at once. The patch must already have passed the bulk validation
// service at the transport boundary; the command re-checks only structural
// requirements (non-empty id list, non-empty patch).
type BatchEditOrdersCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	orderIDs []kernel.UUID
	patch    order.Patch
	actorID  string

	guard guard.ConstructorGuard
}

// NewBatchEditOrdersCommand creates a batch edit command.
func NewBatchEditOrdersCommand(
	tenantID kernel.UUID,
	orderIDs []kernel.UUID,
	patch order.Patch,
	actorID string,
) (BatchEditOrdersCommand, error) {
	cmd := BatchEditOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderIDs(orderIDs),
		cmd.setPatch(patch),
	); err != nil {
		return BatchEditOrdersCommand{}, err
	}

	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BatchEditOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBatchEditOrdersCommandIsNotConstructed)
}

// TenantID returns the tenant scope for the batch edit.
func (c BatchEditOrdersCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderIDs returns the orders to edit.
func (c BatchEditOrdersCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Patch returns the field set applied to every listed order.
func (c BatchEditOrdersCommand) Patch() order.Patch {
	return c.patch
}

// ActorID returns the id of the user performing the edit, if known.
func (c BatchEditOrdersCommand) ActorID() string {
	return c.actorID
}

func (c *BatchEditOrdersCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *BatchEditOrdersCommand) setOrderIDs(orderIDs []kernel.UUID) error {
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

func (c *BatchEditOrdersCommand) setPatch(patch order.Patch) error {
	if patch.IsEmpty() {
		return ErrPatchIsEmpty
	}

	c.patch = patch
	return nil
}
