package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The main line of the lifecycle is:
//
//	Pending ──> Paid ──> Processing ──> Shipped ──> Delivered
//
// with side branches Cancelled, Refunded and Failed reachable from multiple
// states. Delivered, Cancelled, Refunded and Failed are terminal.
//
// Legality of a requested transition is a business decision made by the caller
// (for example a fulfillment workflow); this type validates the requested end
// state vocabulary and exposes the composed guards (cancellation, refund) the
// domain does enforce.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status: the order exists but payment has not completed.
	Pending

	// Paid indicates payment completed and the order awaits fulfillment.
	Paid

	// Processing indicates the order is being prepared for shipment.
	Processing

	// Shipped indicates the order has been handed to a carrier.
	Shipped

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before fulfillment. Terminal.
	Cancelled

	// Refunded indicates payment was returned to the customer. Terminal.
	Refunded

	// Failed indicates the order could not be completed. Terminal.
	Failed
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "UNKNOWN",
		Pending:       "PENDING",
		Paid:          "PAID",
		Processing:    "PROCESSING",
		Shipped:       "SHIPPED",
		Delivered:     "DELIVERED",
		Cancelled:     "CANCELLED",
		Refunded:      "REFUNDED",
		Failed:        "FAILED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Paid:       "PAID",
		Processing: "PROCESSING",
		Shipped:    "SHIPPED",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
		Refunded:   "REFUNDED",
		Failed:     "FAILED",
	}
}

// AllStatuses returns every valid status value in lifecycle order.
// Useful for exhaustive vocabulary checks in validation and tests.
func AllStatuses() []Status {
	return []Status{Pending, Paid, Processing, Shipped, Delivered, Cancelled, Refunded, Failed}
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values outside the vocabulary are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "PENDING".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further lifecycle transitions.
// Terminal statuses are Delivered, Cancelled, Refunded and Failed.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Refunded, Failed:
		return true
	default:
		return false
	}
}

// StatusFromString parses a wire representation like "SHIPPED" into a Status.
// Returns an error for any string outside the vocabulary; unrecognized status
// strings from untrusted input are validation errors, not state-machine failures.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// IsValidStatusString reports whether s is a member of the order status vocabulary.
func IsValidStatusString(s string) bool {
	_, err := StatusFromString(s)
	return err == nil
}
