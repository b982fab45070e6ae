package order

import (
	"storefront/internal/pkg/errs"
)

// Customer is the customer reference carried by an order: identity for
// notifications plus a guest flag for checkout without an account.
type Customer struct {
	name    string
	email   string
	phone   string
	isGuest bool
}

// NewCustomer creates a customer reference. Name and email are required;
// phone may be empty for channels that do not collect one.
func NewCustomer(name, email, phone string, isGuest bool) (Customer, error) {
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if email == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer email")
	}

	return Customer{
		name:    name,
		email:   email,
		phone:   phone,
		isGuest: isGuest,
	}, nil
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Email returns the customer's email address.
func (c Customer) Email() string {
	return c.email
}

// Phone returns the customer's phone number, possibly empty.
func (c Customer) Phone() string {
	return c.phone
}

// IsGuest reports whether the order was placed without an account.
func (c Customer) IsGuest() bool {
	return c.isGuest
}
