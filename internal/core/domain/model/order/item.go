package order

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Item is a single line item of an order.
//
// Invariants:
//   - quantity is at least 1
//   - totalPrice equals unitPrice multiplied by quantity, in the same currency
type Item struct {
	productID  string
	name       string
	quantity   int
	unitPrice  kernel.Money
	totalPrice kernel.Money
}

// NewItem creates a line item and computes its total price from the unit price
// and quantity. The computed total is the only total an item can carry, which
// keeps the line-total invariant true by construction.
func NewItem(productID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	if productID == "" {
		return Item{}, errs.NewValueIsRequiredError("product id")
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not at least 1", quantity),
		)
	}

	total, err := unitPrice.MultiplyBy(quantity)
	if err != nil {
		return Item{}, err
	}

	return Item{
		productID:  productID,
		name:       name,
		quantity:   quantity,
		unitPrice:  unitPrice,
		totalPrice: total,
	}, nil
}

// ProductID returns the product reference.
func (i Item) ProductID() string {
	return i.productID
}

// Name returns the display name of the product at order time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of a single unit.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice returns the computed line total (unit price × quantity).
func (i Item) TotalPrice() kernel.Money {
	return i.totalPrice
}
