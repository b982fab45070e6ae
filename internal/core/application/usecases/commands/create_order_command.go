package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired    = errors.New("order number is required")
	ErrIdempotencyKeyIsRequired = errors.New("idempotency key is required")
	ErrItemsAreRequired         = errors.New("at least one item is required")
)

// CreateOrderCommand represents a request to create a new order for a tenant.
// Carries everything the aggregate constructor needs: identity, customer,
// items, totals, and the payment/shipping sub-records. The idempotency key
// makes the command safe to retry: a duplicate submission with the same key
// is collapsed into a no-op.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), tenantID,
//	    "ORD-1042", "req-7f3a",
//	    customer, items,
//	    subtotal, tax, total,
//	    payment, shipping,
//	    "web",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	tenantID       kernel.UUID
	orderNumber    string
	idempotencyKey string
	customer       order.Customer
	items          []order.Item
	subtotal       kernel.Money
	tax            kernel.Money
	total          kernel.Money
	payment        order.Payment
	shipping       order.Shipping
	source         string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identity, totals, and sub-records; returns an error if any
// validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	tenantID kernel.UUID,
	orderNumber string,
	idempotencyKey string,
	customer order.Customer,
	items []order.Item,
	subtotal kernel.Money,
	tax kernel.Money,
	total kernel.Money,
	payment order.Payment,
	shipping order.Shipping,
	source string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenantID(tenantID),
		cmd.setOrderNumber(orderNumber),
		cmd.setIdempotencyKey(idempotencyKey),
		cmd.setCustomer(customer),
		cmd.setItems(items),
		cmd.setTotals(subtotal, tax, total),
		cmd.setPayment(payment),
		cmd.setShipping(shipping),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.source = source
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the tenant the order belongs to.
func (c CreateOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderNumber returns the human-facing order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// IdempotencyKey returns the caller-supplied retry token.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// Customer returns the customer reference.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Items returns the order line items.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

// Subtotal returns the pre-tax total.
func (c CreateOrderCommand) Subtotal() kernel.Money {
	return c.subtotal
}

// Tax returns the tax amount.
func (c CreateOrderCommand) Tax() kernel.Money {
	return c.tax
}

// Total returns the grand total.
func (c CreateOrderCommand) Total() kernel.Money {
	return c.total
}

// Payment returns the payment sub-record.
func (c CreateOrderCommand) Payment() order.Payment {
	return c.payment
}

// Shipping returns the shipping sub-record.
func (c CreateOrderCommand) Shipping() order.Shipping {
	return c.shipping
}

// Source returns the channel the order originated from.
func (c CreateOrderCommand) Source() string {
	return c.source
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setIdempotencyKey(key string) error {
	if key == "" {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = key
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setTotals(subtotal, tax, total kernel.Money) error {
	if err := errors.Join(subtotal.Validate(), tax.Validate(), total.Validate()); err != nil {
		return err
	}

	c.subtotal = subtotal
	c.tax = tax
	c.total = total
	return nil
}

func (c *CreateOrderCommand) setPayment(payment order.Payment) error {
	c.payment = payment
	return nil
}

func (c *CreateOrderCommand) setShipping(shipping order.Shipping) error {
	c.shipping = shipping
	return nil
}
