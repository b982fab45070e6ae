package order

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Patch is a partial update to an order, produced by the tabular import
// converter and by batch edits. Nil fields were absent from the source and are
// left untouched; callers must not assume full-order replacement semantics.
type Patch struct {
	OrderNumber string

	Status         *Status
	PaymentStatus  *PaymentStatus
	ShippingMethod *ShippingMethod
	TrackingNumber *string
	Notes          *string

	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string

	Total *kernel.Money
}

// IsEmpty reports whether the patch carries no fields to apply.
func (p Patch) IsEmpty() bool {
	return p.Status == nil &&
		p.PaymentStatus == nil &&
		p.ShippingMethod == nil &&
		p.TrackingNumber == nil &&
		p.Notes == nil &&
		p.CustomerName == nil &&
		p.CustomerEmail == nil &&
		p.CustomerPhone == nil &&
		p.Total == nil
}

// ApplyPatch applies the present fields of a patch to the order. A status field
// routes through ChangeStatus so the timeline stays consistent; a status equal
// to the current one is a no-op rather than a duplicate timeline entry.
//
// Patches must be validated (see the bulk validation service) before being
// applied; ApplyPatch still re-checks enum validity, currency agreement, and
// that the patch does not blank the customer's name or email (both required by
// the customer reference, which persistence refuses to rehydrate without).
func (o *Order) ApplyPatch(p Patch, actor string) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if p.Status != nil && *p.Status != o.status {
		if err := o.ChangeStatus(*p.Status, actor, "bulk update"); err != nil {
			return err
		}
	}

	if p.PaymentStatus != nil {
		if err := p.PaymentStatus.Validate(); err != nil {
			return err
		}
		o.payment.status = *p.PaymentStatus
	}

	if p.ShippingMethod != nil {
		if err := p.ShippingMethod.Validate(); err != nil {
			return err
		}
		o.shipping.method = *p.ShippingMethod
	}

	if p.TrackingNumber != nil {
		tracking := *p.TrackingNumber
		o.shipping.trackingNumber = &tracking
	}

	if p.Notes != nil {
		o.notes = *p.Notes
	}

	if p.CustomerName != nil {
		if *p.CustomerName == "" {
			return errs.NewValueIsRequiredError("customer name")
		}
		o.customer.name = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		if *p.CustomerEmail == "" {
			return errs.NewValueIsRequiredError("customer email")
		}
		o.customer.email = *p.CustomerEmail
	}
	if p.CustomerPhone != nil {
		o.customer.phone = *p.CustomerPhone
	}

	if p.Total != nil {
		if err := p.Total.Validate(); err != nil {
			return err
		}
		if p.Total.Currency() != o.total.Currency() {
			return errs.NewValueIsInvalidErrorWithCause(
				"total is invalid",
				fmt.Errorf("patch currency %s does not match order currency %s",
					p.Total.Currency(), o.total.Currency()),
			)
		}
		o.total = *p.Total
	}

	return nil
}
