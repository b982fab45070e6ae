package services

import (
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

const (
	maxOrderIDLength        = 64
	maxTrackingNumberLength = 100
	maxNotesLength          = 5000
)

// emailPattern matches the address shapes accepted for imported customer
// emails: one "@", no whitespace, and a dotted domain part. Full RFC 5322
// parsing is deliberately out of scope for bulk input.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BulkValidator is the domain service that gatekeeps every multi-order
// mutation: batch field edits, bulk status changes, bulk deletes, and
// imported tabular rows. Nothing reaches persistence or domain-model
// conversion without passing through it first.
//
// Key responsibilities:
//   - Checking submitted order id lists for presence and identifier shape
//   - Enforcing the status, payment-status, and shipping-method vocabularies
//   - Enforcing length limits on free-text fields
//   - Producing per-row, per-field errors for imported data so a caller can
//     report each offending cell without discarding the whole file
//
// Business rules:
//   - Validation never halts a batch: every row and every field is checked
//     and the full error set is returned
//   - Unknown top-level field names in a batch edit pass through unvalidated
//   - A validation failure is data feedback, never a fatal error
//
// The validator holds no state; one instance is safe to share across
// concurrent request handlers.
type BulkValidator struct{}

// NewBulkValidator creates a new BulkValidator instance.
func NewBulkValidator() BulkValidator {
	return BulkValidator{}
}

// ValidateBatchEdit checks a sparse multi-order edit request: the target id
// list plus a map of the fields being changed. Recognized fields are checked
// against their vocabulary or length limit; unrecognized field names pass
// through untouched.
func (v BulkValidator) ValidateBatchEdit(orderIDs []string, fieldsToUpdate map[string]any) ValidationResult {
	var result ValidationResult

	v.checkOrderIDs(&result, orderIDs)

	if len(fieldsToUpdate) == 0 {
		result.addError("fields", "No fields to update")
		return result
	}

	if value, ok := fieldsToUpdate["status"]; ok {
		v.checkEnumField(&result, "status", value, order.IsValidStatusString, "order status")
	}
	if value, ok := fieldsToUpdate["payment.status"]; ok {
		v.checkEnumField(&result, "payment.status", value, order.IsValidPaymentStatusString, "payment status")
	}
	if value, ok := fieldsToUpdate["shipping.method"]; ok {
		v.checkEnumField(&result, "shipping.method", value, order.IsValidShippingMethodString, "shipping method")
	}
	if value, ok := fieldsToUpdate["shipping.tracking_number"]; ok {
		v.checkLengthField(&result, "shipping.tracking_number", value, maxTrackingNumberLength)
	}
	if value, ok := fieldsToUpdate["notes"]; ok {
		v.checkLengthField(&result, "notes", value, maxNotesLength)
	}

	return result
}

// ValidateStatusUpdate checks a bulk status change: the target id list and
// the single status every listed order should move to.
func (v BulkValidator) ValidateStatusUpdate(orderIDs []string, status string) ValidationResult {
	var result ValidationResult

	v.checkOrderIDs(&result, orderIDs)

	if status == "" {
		result.addError("status", "Status is required")
	} else if !order.IsValidStatusString(status) {
		result.addError("status", fmt.Sprintf("%q is not a valid order status", status))
	}

	return result
}

// ValidateBulkDelete checks a bulk delete request. Individual id shapes are
// validated the same way ValidateBatchEdit validates them, so a malformed id
// is rejected before deletion regardless of which bulk endpoint carries it.
func (v BulkValidator) ValidateBulkDelete(orderIDs []string) ValidationResult {
	var result ValidationResult
	v.checkOrderIDs(&result, orderIDs)
	return result
}

// ValidateImportedOrders checks every row of a parsed bulk import and returns
// one error per offending (field, row) pair. Indices in the returned errors
// are zero-based positions in the input slice. The full row set is always
// evaluated; a bad row never stops later rows from being checked.
func (v BulkValidator) ValidateImportedOrders(rows []ImportedOrderRow) ValidationResult {
	var result ValidationResult

	for i, row := range rows {
		if strings.TrimSpace(row.OrderNumber) == "" {
			result.addRowError("order_number", "Order number is required", i)
		}
		if strings.TrimSpace(row.CustomerName) == "" {
			result.addRowError("customer_name", "Customer name is required", i)
		}

		email := strings.TrimSpace(row.CustomerEmail)
		switch {
		case email == "":
			result.addRowError("customer_email", "Customer email is required", i)
		case !emailPattern.MatchString(email):
			result.addRowError("customer_email", fmt.Sprintf("Invalid email format: %q", email), i)
		}

		if strings.TrimSpace(row.CustomerPhone) == "" {
			result.addRowError("customer_phone", "Customer phone is required", i)
		}

		if row.Status != "" && !order.IsValidStatusString(row.Status) {
			result.addRowError("status", fmt.Sprintf("%q is not a valid order status", row.Status), i)
		}
		if row.PaymentStatus != "" && !order.IsValidPaymentStatusString(row.PaymentStatus) {
			result.addRowError("payment_status", fmt.Sprintf("%q is not a valid payment status", row.PaymentStatus), i)
		}
		if row.ShippingMethod != "" && !order.IsValidShippingMethodString(row.ShippingMethod) {
			result.addRowError("shipping_method", fmt.Sprintf("%q is not a valid shipping method", row.ShippingMethod), i)
		}
		if row.Currency != "" && !kernel.IsValidCurrencyCode(row.Currency) {
			result.addRowError("currency", "Currency must be a 3-letter uppercase code", i)
		}
		if row.TotalAmount != "" {
			if _, err := decimal.NewFromString(row.TotalAmount); err != nil {
				result.addRowError("total_amount", fmt.Sprintf("%q is not a valid decimal amount", row.TotalAmount), i)
			}
		}
	}

	return result
}

func (v BulkValidator) checkOrderIDs(result *ValidationResult, orderIDs []string) {
	if len(orderIDs) == 0 {
		result.addError("orderIds", "No order ids provided")
		return
	}

	for i, id := range orderIDs {
		if strings.TrimSpace(id) == "" {
			result.addRowError("orderIds", "Order id must be a non-empty string", i)
			continue
		}
		if len(id) > maxOrderIDLength {
			result.addRowError("orderIds", fmt.Sprintf("Order id exceeds %d characters", maxOrderIDLength), i)
		}
	}
}

func (v BulkValidator) checkEnumField(result *ValidationResult, field string, value any, isValid func(string) bool, label string) {
	s, ok := value.(string)
	if !ok {
		result.addError(field, fmt.Sprintf("%s must be a string", field))
		return
	}
	if !isValid(s) {
		result.addError(field, fmt.Sprintf("%q is not a valid %s", s, label))
	}
}

func (v BulkValidator) checkLengthField(result *ValidationResult, field string, value any, maxLength int) {
	s, ok := value.(string)
	if !ok {
		result.addError(field, fmt.Sprintf("%s must be a string", field))
		return
	}
	if len(s) > maxLength {
		result.addError(field, fmt.Sprintf("%s exceeds %d characters", field, maxLength))
	}
}
