package order

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// PaymentStatus represents the state of an order's payment. It is independent
// of the order status but constrains it: refunds are only legal while the
// payment is PaymentCompleted.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending indicates payment has not been attempted or is in flight.
	PaymentPending

	// PaymentAuthorized indicates funds are reserved but not captured.
	PaymentAuthorized

	// PaymentCompleted indicates funds were captured successfully.
	PaymentCompleted

	// PaymentFailed indicates the payment attempt failed.
	PaymentFailed

	// PaymentRefunded indicates captured funds were returned to the customer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "UNKNOWN",
		PaymentPending:       "PENDING",
		PaymentAuthorized:    "AUTHORIZED",
		PaymentCompleted:     "COMPLETED",
		PaymentFailed:        "FAILED",
		PaymentRefunded:      "REFUNDED",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:    "PENDING",
		PaymentAuthorized: "AUTHORIZED",
		PaymentCompleted:  "COMPLETED",
		PaymentFailed:     "FAILED",
		PaymentRefunded:   "REFUNDED",
	}
}

// AllPaymentStatuses returns every valid payment status value.
func AllPaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentAuthorized, PaymentCompleted, PaymentFailed, PaymentRefunded}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the wire representation, e.g. "COMPLETED". Implements fmt.Stringer.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// PaymentStatusFromString parses a wire representation into a PaymentStatus.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// IsValidPaymentStatusString reports whether s is a member of the payment status vocabulary.
func IsValidPaymentStatusString(s string) bool {
	_, err := PaymentStatusFromString(s)
	return err == nil
}

// PaymentMethod identifies how the customer pays for an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// Card is a credit or debit card payment.
	Card

	// BankTransfer is a direct bank transfer.
	BankTransfer

	// Wallet is a stored-value or third-party wallet payment.
	Wallet

	// CashOnDelivery is payment collected by the carrier at delivery.
	CashOnDelivery
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "UNKNOWN",
		Card:                 "CARD",
		BankTransfer:         "BANK_TRANSFER",
		Wallet:               "WALLET",
		CashOnDelivery:       "CASH_ON_DELIVERY",
	}
}

func getValidPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		Card:           "CARD",
		BankTransfer:   "BANK_TRANSFER",
		Wallet:         "WALLET",
		CashOnDelivery: "CASH_ON_DELIVERY",
	}
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// String returns the wire representation, e.g. "CARD". Implements fmt.Stringer.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// PaymentMethodFromString parses a wire representation into a PaymentMethod.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getValidPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

// Payment is the payment sub-record of an order: method, status, amount paid
// and the processor's transaction reference once one exists.
type Payment struct {
	method        PaymentMethod
	status        PaymentStatus
	amountPaid    kernel.Money
	transactionID *string
}

// NewPayment creates a payment sub-record. TransactionID is optional and may be nil
// until the payment processor has assigned one.
func NewPayment(method PaymentMethod, status PaymentStatus, amountPaid kernel.Money, transactionID *string) (Payment, error) {
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}
	if err := amountPaid.Validate(); err != nil {
		return Payment{}, err
	}

	return Payment{
		method:        method,
		status:        status,
		amountPaid:    amountPaid,
		transactionID: transactionID,
	}, nil
}

// Method returns the payment method.
func (p Payment) Method() PaymentMethod {
	return p.method
}

// Status returns the payment status.
func (p Payment) Status() PaymentStatus {
	return p.status
}

// AmountPaid returns the captured amount.
func (p Payment) AmountPaid() kernel.Money {
	return p.amountPaid
}

// TransactionID returns the processor's transaction reference, or nil if none
// has been assigned yet.
func (p Payment) TransactionID() *string {
	return p.transactionID
}
