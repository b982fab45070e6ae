package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrImportOrdersCommandIsNotConstructed = errors.New(
		"ImportOrdersCommand must be created via NewImportOrdersCommand constructor",
	)
	ErrPatchesAreRequired       = errors.New("at least one patch is required")
	ErrPatchOrderNumberRequired = errors.New("every patch must carry an order number")
)

// ImportOrdersCommand applies a set of validated import patches to a tenant's
// orders, matched by order number. Patches come from the tabular transcoder
// after bulk validation; rows that failed validation never reach this command.
type ImportOrdersCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	patches  []order.Patch
	actorID  string

	guard guard.ConstructorGuard
}

// NewImportOrdersCommand creates an import command from validated patches.
func NewImportOrdersCommand(
	tenantID kernel.UUID,
	patches []order.Patch,
	actorID string,
) (ImportOrdersCommand, error) {
	cmd := ImportOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setPatches(patches),
	); err != nil {
		return ImportOrdersCommand{}, err
	}

	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportOrdersCommand) Validate() error {
	return c.guard.Validate(ErrImportOrdersCommandIsNotConstructed)
}

// TenantID returns the tenant scope for the import.
func (c ImportOrdersCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// Patches returns the per-order patches, in input order.
func (c ImportOrdersCommand) Patches() []order.Patch {
	patches := make([]order.Patch, len(c.patches))
	copy(patches, c.patches)
	return patches
}

// ActorID returns the id of the user performing the import, if known.
func (c ImportOrdersCommand) ActorID() string {
	return c.actorID
}

func (c *ImportOrdersCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *ImportOrdersCommand) setPatches(patches []order.Patch) error {
	if len(patches) == 0 {
		return ErrPatchesAreRequired
	}
	for _, patch := range patches {
		if patch.OrderNumber == "" {
			return ErrPatchOrderNumberRequired
		}
	}

	c.patches = make([]order.Patch, len(patches))
	copy(c.patches, patches)
	return nil
}
