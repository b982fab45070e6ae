package order

import (
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ShippingMethod identifies the delivery service level chosen for an order.
type ShippingMethod int

const (
	// ShippingMethodUnknown represents an invalid or undefined shipping method.
	ShippingMethodUnknown ShippingMethod = iota

	// Standard is the default ground shipping service.
	Standard

	// Express is an expedited shipping service.
	Express

	// Overnight is next-day delivery.
	Overnight

	// Pickup means the customer collects the order themselves.
	Pickup
)

func getShippingMethodStrings() map[ShippingMethod]string {
	return map[ShippingMethod]string{
		ShippingMethodUnknown: "UNKNOWN",
		Standard:              "STANDARD",
		Express:               "EXPRESS",
		Overnight:             "OVERNIGHT",
		Pickup:                "PICKUP",
	}
}

func getValidShippingMethodStrings() map[ShippingMethod]string {
	//nolint:exhaustive // ShippingMethodUnknown is intentionally excluded as it's invalid
	return map[ShippingMethod]string{
		Standard:  "STANDARD",
		Express:   "EXPRESS",
		Overnight: "OVERNIGHT",
		Pickup:    "PICKUP",
	}
}

// AllShippingMethods returns every valid shipping method value.
func AllShippingMethods() []ShippingMethod {
	return []ShippingMethod{Standard, Express, Overnight, Pickup}
}

// Validate checks if the ShippingMethod value is valid.
func (m ShippingMethod) Validate() error {
	if _, ok := getValidShippingMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipping method is invalid",
			fmt.Errorf("%d is not a valid shipping method", m),
		)
	}
	return nil
}

// String returns the wire representation, e.g. "EXPRESS". Implements fmt.Stringer.
func (m ShippingMethod) String() string {
	if str, ok := getShippingMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// ShippingMethodFromString parses a wire representation into a ShippingMethod.
func ShippingMethodFromString(s string) (ShippingMethod, error) {
	for method, str := range getValidShippingMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return ShippingMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shipping method is invalid",
		fmt.Errorf("%q is not a valid shipping method", s),
	)
}

// IsValidShippingMethodString reports whether s is a member of the shipping method vocabulary.
func IsValidShippingMethodString(s string) bool {
	_, err := ShippingMethodFromString(s)
	return err == nil
}

// Address is a postal address value object. Line2 and State are optional and
// rendered only when non-empty.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Flatten joins the non-empty address components with ", " into a single
// human-editable cell for tabular interchange.
func (a Address) Flatten() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// Shipping is the shipping sub-record of an order: method, destination address,
// shipping cost, and the carrier's tracking number once one exists.
type Shipping struct {
	method         ShippingMethod
	address        Address
	cost           kernel.Money
	trackingNumber *string
}

// NewShipping creates a shipping sub-record. TrackingNumber is optional and may
// be nil until the order has been handed to a carrier.
func NewShipping(method ShippingMethod, address Address, cost kernel.Money, trackingNumber *string) (Shipping, error) {
	if err := method.Validate(); err != nil {
		return Shipping{}, err
	}
	if err := cost.Validate(); err != nil {
		return Shipping{}, err
	}

	return Shipping{
		method:         method,
		address:        address,
		cost:           cost,
		trackingNumber: trackingNumber,
	}, nil
}

// Method returns the shipping service level.
func (s Shipping) Method() ShippingMethod {
	return s.method
}

// Address returns the destination address.
func (s Shipping) Address() Address {
	return s.address
}

// Cost returns the shipping cost.
func (s Shipping) Cost() kernel.Money {
	return s.cost
}

// TrackingNumber returns the carrier tracking number, or nil if the order has
// not shipped yet.
func (s Shipping) TrackingNumber() *string {
	return s.trackingNumber
}
