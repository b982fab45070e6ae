package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for the commerce order lifecycle. It carries the
// order's identity (scoped to exactly one tenant), monetary totals, line items,
// payment and shipping sub-records, and an append-only status timeline.
//
// Order maintains these invariants:
//   - Must have valid order and tenant identifiers and a non-empty order number
//   - Every item's line total equals unit price × quantity in the order currency
//   - The timeline is append-only with non-decreasing timestamps, and its most
//     recent entry's status equals the order's current status
//   - Cancellation is only possible early (PENDING, PAID); refunds only after a
//     completed payment (see CanBeCancelled, CanBeRefunded)
//
// The struct uses private fields to ensure encapsulation; instances must be
// created through NewOrder (new orders) or RestoreOrder (persistence rehydration).
type Order struct {
	id             kernel.UUID
	tenantID       kernel.UUID
	orderNumber    string
	idempotencyKey string

	customer Customer
	items    []Item

	subtotal kernel.Money
	tax      kernel.Money
	total    kernel.Money

	status   Status
	payment  Payment
	shipping Shipping
	timeline []TimelineEntry

	notes     string
	source    string
	metadata  map[string]string
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with a timeline seeded by the
// creation entry. The idempotency key is the caller-supplied token that makes
// creation safe to retry; uniqueness per tenant is enforced by the persistence
// layer, not here.
//
// The total is supplied rather than computed because discounts and rounding may
// be applied upstream; total == subtotal + tax + shipping cost is an advisory
// invariant checked by tests, not enforced at construction.
//
// Example:
//
//	o, err := order.NewOrder(
//	    kernel.NewUUID(), tenantID,
//	    "ORD-1042", "c3a1...idempotency-key",
//	    customer, items,
//	    subtotal, tax, total,
//	    payment, shipping,
//	    "web",
//	)
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderNumber string,
	idempotencyKey string,
	customer Customer,
	items []Item,
	subtotal kernel.Money,
	tax kernel.Money,
	total kernel.Money,
	payment Payment,
	shipping Shipping,
	source string,
) (*Order, error) {
	now := time.Now()

	o := &Order{
		status:        Pending,
		source:        source,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setOrderNumber(orderNumber),
		o.setIdempotencyKey(idempotencyKey),
		o.setCustomer(customer),
		o.setTotals(subtotal, tax, total),
		o.setItems(items),
		o.setPayment(payment),
		o.setShipping(shipping),
	); err != nil {
		return nil, err
	}

	entry, err := NewTimelineEntry(Pending, now, "order created", "")
	if err != nil {
		return nil, err
	}
	o.timeline = []TimelineEntry{entry}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state without re-running
// creation side effects. The timeline is restored as stored; callers must pass
// a timeline whose last entry matches the stored status.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderNumber string,
	idempotencyKey string,
	customer Customer,
	items []Item,
	subtotal kernel.Money,
	tax kernel.Money,
	total kernel.Money,
	status Status,
	payment Payment,
	shipping Shipping,
	timeline []TimelineEntry,
	notes string,
	source string,
	metadata map[string]string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		source:        source,
		notes:         notes,
		metadata:      metadata,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setOrderNumber(orderNumber),
		o.setIdempotencyKey(idempotencyKey),
		o.setCustomer(customer),
		o.setTotals(subtotal, tax, total),
		o.setItems(items),
		o.setPayment(payment),
		o.setShipping(shipping),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.timeline = timeline

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory
// function. This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the tenant that owns this order. Every operation on an order
// is scoped to exactly one tenant.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// OrderNumber returns the human-facing order number, unique within the tenant.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// IdempotencyKey returns the caller-supplied creation token, unique within the tenant.
func (o *Order) IdempotencyKey() string {
	return o.idempotencyKey
}

// Customer returns the customer reference.
func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns the ordered line items. The returned slice is a copy; mutating
// it does not affect the aggregate.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Subtotal returns the pre-tax, pre-shipping amount.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Tax returns the tax amount.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// Total returns the grand total charged for the order.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Payment returns the payment sub-record.
func (o *Order) Payment() Payment {
	return o.payment
}

// Shipping returns the shipping sub-record.
func (o *Order) Shipping() Shipping {
	return o.shipping
}

// Timeline returns the append-only status history. The returned slice is a copy.
func (o *Order) Timeline() []TimelineEntry {
	timeline := make([]TimelineEntry, len(o.timeline))
	copy(timeline, o.timeline)
	return timeline
}

// Notes returns the operator notes attached to the order, possibly empty.
func (o *Order) Notes() string {
	return o.notes
}

// Source returns the channel the order originated from (e.g. "web", "import").
func (o *Order) Source() string {
	return o.source
}

// Metadata returns the optional caller-supplied metadata, or nil when none exists.
func (o *Order) Metadata() map[string]string {
	return o.metadata
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CanBeCancelled reports whether the order may be cancelled: only early in the
// lifecycle, while status is PENDING or PAID.
func (o *Order) CanBeCancelled() bool {
	return o.status == Pending || o.status == Paid
}

// CanBeRefunded reports whether the order may be refunded: only after payment
// completed and before delivery (status PAID, PROCESSING or SHIPPED).
func (o *Order) CanBeRefunded() bool {
	switch o.status {
	case Paid, Processing, Shipped:
		return o.payment.Status() == PaymentCompleted
	default:
		return false
	}
}

// IsComplete reports whether the order has reached DELIVERED.
func (o *Order) IsComplete() bool {
	return o.status == Delivered
}

// TotalItems sums the quantities across all line items.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity()
	}
	return total
}

// LatestTimelineEvent returns the timeline entry with the maximum timestamp.
// Ties are broken by insertion order (the later entry wins), because wall-clock
// timestamps may have coarse resolution. The second return value is false for
// an empty timeline.
func (o *Order) LatestTimelineEvent() (TimelineEntry, bool) {
	if len(o.timeline) == 0 {
		return TimelineEntry{}, false
	}

	latest := o.timeline[0]
	for _, entry := range o.timeline[1:] {
		// >= keeps the later insertion on equal timestamps
		if !entry.Timestamp().Before(latest.Timestamp()) {
			latest = entry
		}
	}
	return latest, true
}

// ChangeStatus moves the order to a new status and appends a timeline entry.
// It validates that the target status belongs to the vocabulary and that the
// current status is not terminal; legality of the specific business transition
// beyond that is the caller's decision (see CanBeCancelled / CanBeRefunded for
// the transitions the domain does guard; use Cancel and Refund for those).
func (o *Order) ChangeStatus(to Status, actor, note string) error {
	if err := to.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is terminal and permits no further transitions", o.status),
		)
	}

	o.status = to
	o.appendTimeline(to, actor, note)
	return nil
}

// MarkPaid records a completed payment: status becomes PAID, the payment
// sub-record moves to COMPLETED and stores the processor's transaction id.
// Only legal from PENDING.
func (o *Order) MarkPaid(transactionID, actor string) error {
	if o.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark paid", o.status),
		)
	}

	o.payment.status = PaymentCompleted
	if transactionID != "" {
		o.payment.transactionID = &transactionID
	}
	o.status = Paid
	o.appendTimeline(Paid, actor, "payment completed")
	return nil
}

// MarkShipped records the carrier handoff: stores the tracking number and moves
// the order to SHIPPED. Only legal from PAID or PROCESSING.
func (o *Order) MarkShipped(trackingNumber, actor string) error {
	if o.status != Paid && o.status != Processing {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to ship from", o.status),
		)
	}

	if trackingNumber != "" {
		o.shipping.trackingNumber = &trackingNumber
	}
	o.status = Shipped
	o.appendTimeline(Shipped, actor, "order shipped")
	return nil
}

// MarkDelivered records delivery to the customer. Only legal from SHIPPED.
func (o *Order) MarkDelivered(actor string) error {
	if o.status != Shipped {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver from", o.status),
		)
	}

	o.status = Delivered
	o.appendTimeline(Delivered, actor, "order delivered")
	return nil
}

// Cancel cancels the order. Guarded by CanBeCancelled: cancellation is only
// allowed early in the lifecycle (PENDING, PAID).
func (o *Order) Cancel(actor, reason string) error {
	if !o.CanBeCancelled() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel from", o.status),
		)
	}

	o.status = Cancelled
	o.appendTimeline(Cancelled, actor, reason)
	return nil
}

// Refund refunds the order. Guarded by CanBeRefunded: the payment must have
// completed and the order must not have been delivered. The payment sub-record
// moves to REFUNDED alongside the order status.
func (o *Order) Refund(actor, reason string) error {
	if !o.CanBeRefunded() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("order in status %s with payment status %s cannot be refunded",
				o.status, o.payment.Status()),
		)
	}

	o.payment.status = PaymentRefunded
	o.status = Refunded
	o.appendTimeline(Refunded, actor, reason)
	return nil
}

// SetNotes replaces the operator notes attached to the order.
func (o *Order) SetNotes(notes string) {
	o.notes = notes
}

// appendTimeline appends an entry for the given status stamped with the current
// wall-clock time. Timestamps are clamped to the latest existing entry so the
// timeline stays monotonically non-decreasing even under clock regression;
// insertion order disambiguates equal timestamps.
func (o *Order) appendTimeline(status Status, actor, note string) {
	ts := time.Now()
	if last := len(o.timeline) - 1; last >= 0 && ts.Before(o.timeline[last].Timestamp()) {
		ts = o.timeline[last].Timestamp()
	}

	o.timeline = append(o.timeline, TimelineEntry{
		status:    status,
		timestamp: ts,
		note:      note,
		createdBy: actor,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setIdempotencyKey(idempotencyKey string) error {
	if idempotencyKey == "" {
		return errs.NewValueIsRequiredError("idempotency key")
	}
	o.idempotencyKey = idempotencyKey
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if customer == (Customer{}) {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

// setTotals validates the three order-level monetary fields and their currency
// agreement. It must run before setItems, which checks items against the total's currency.
func (o *Order) setTotals(subtotal, tax, total kernel.Money) error {
	if err := errors.Join(subtotal.Validate(), tax.Validate(), total.Validate()); err != nil {
		return err
	}

	if subtotal.Currency() != total.Currency() || tax.Currency() != total.Currency() {
		return kernel.ErrCurrencyMismatch
	}

	o.subtotal = subtotal
	o.tax = tax
	o.total = total
	return nil
}

func (o *Order) setItems(items []Item) error {
	for i, item := range items {
		if item.TotalPrice().Currency() != o.total.Currency() {
			return errs.NewValueIsInvalidErrorWithCause(
				"items are invalid",
				fmt.Errorf("item %d currency %s does not match order currency %s",
					i, item.TotalPrice().Currency(), o.total.Currency()),
			)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	if payment == (Payment{}) {
		return errs.NewValueIsRequiredError("payment")
	}
	o.payment = payment
	return nil
}

func (o *Order) setShipping(shipping Shipping) error {
	if shipping == (Shipping{}) {
		return errs.NewValueIsRequiredError("shipping")
	}
	o.shipping = shipping
	return nil
}
