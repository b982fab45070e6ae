// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Scalar identity and money columns stay relational for querying; the item
// list, timeline, and metadata are stored as jsonb documents since they are
// only ever read back whole.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uidx_orders_tenant_number,priority:1;uniqueIndex:uidx_orders_tenant_idem,priority:1"`
	OrderNumber    string    `gorm:"uniqueIndex:uidx_orders_tenant_number,priority:2"`
	IdempotencyKey string    `gorm:"uniqueIndex:uidx_orders_tenant_idem,priority:2"`

	Customer CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Payment  PaymentDTO  `gorm:"embedded;embeddedPrefix:payment_"`
	Shipping ShippingDTO `gorm:"embedded;embeddedPrefix:shipping_"`

	Subtotal string
	Tax      string
	Total    string
	Currency string `gorm:"type:char(3)"`

	Status int `gorm:"index"`

	Items    ItemsJSON    `gorm:"type:jsonb"`
	Timeline TimelineJSON `gorm:"type:jsonb"`
	Metadata StringMap    `gorm:"type:jsonb"`

	Notes     string
	Source    string
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer reference within the order table.
type CustomerDTO struct {
	Name    string
	Email   string `gorm:"index"`
	Phone   string
	IsGuest bool
}

// PaymentDTO represents the embedded payment sub-record within the order table.
type PaymentDTO struct {
	Method        int
	Status        int
	AmountPaid    string
	TransactionID *string
}

// ShippingDTO represents the embedded shipping sub-record within the order table.
type ShippingDTO struct {
	Method         int
	AddressLine1   string
	AddressLine2   string
	City           string
	State          string
	PostalCode     string
	Country        string
	Cost           string
	TrackingNumber *string
}

// ItemDTO is the jsonb element shape for one order line item.
type ItemDTO struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
	Currency   string `json:"currency"`
}

// TimelineEntryDTO is the jsonb element shape for one timeline entry.
type TimelineEntryDTO struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// ItemsJSON marshals the item list into a jsonb column.
type ItemsJSON []ItemDTO

func (j ItemsJSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *ItemsJSON) Scan(value any) error {
	return scanJSON(value, j)
}

// TimelineJSON marshals the timeline into a jsonb column.
type TimelineJSON []TimelineEntryDTO

func (j TimelineJSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *TimelineJSON) Scan(value any) error {
	return scanJSON(value, j)
}

// StringMap marshals the free-form metadata map into a jsonb column.
// A nil map round-trips as SQL NULL.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *StringMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	return scanJSON(value, m)
}

func scanJSON(value, target any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make(ItemsJSON, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID:  item.ProductID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().AmountString(),
			TotalPrice: item.TotalPrice().AmountString(),
			Currency:   item.TotalPrice().Currency(),
		})
	}

	timeline := make(TimelineJSON, 0, len(aggregate.Timeline()))
	for _, entry := range aggregate.Timeline() {
		timeline = append(timeline, TimelineEntryDTO{
			Status:    int(entry.Status()),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
			CreatedBy: entry.CreatedBy(),
		})
	}

	payment := aggregate.Payment()
	shipping := aggregate.Shipping()
	address := shipping.Address()

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		TenantID:       aggregate.TenantID().Bytes(),
		OrderNumber:    aggregate.OrderNumber(),
		IdempotencyKey: aggregate.IdempotencyKey(),
		Customer: CustomerDTO{
			Name:    aggregate.Customer().Name(),
			Email:   aggregate.Customer().Email(),
			Phone:   aggregate.Customer().Phone(),
			IsGuest: aggregate.Customer().IsGuest(),
		},
		Payment: PaymentDTO{
			Method:        int(payment.Method()),
			Status:        int(payment.Status()),
			AmountPaid:    payment.AmountPaid().AmountString(),
			TransactionID: payment.TransactionID(),
		},
		Shipping: ShippingDTO{
			Method:         int(shipping.Method()),
			AddressLine1:   address.Line1,
			AddressLine2:   address.Line2,
			City:           address.City,
			State:          address.State,
			PostalCode:     address.PostalCode,
			Country:        address.Country,
			Cost:           shipping.Cost().AmountString(),
			TrackingNumber: shipping.TrackingNumber(),
		},
		Subtotal:  aggregate.Subtotal().AmountString(),
		Tax:       aggregate.Tax().AmountString(),
		Total:     aggregate.Total().AmountString(),
		Currency:  aggregate.Total().Currency(),
		Status:    int(aggregate.Status()),
		Items:     items,
		Timeline:  timeline,
		Metadata:  aggregate.Metadata(),
		Notes:     aggregate.Notes(),
		Source:    aggregate.Source(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(
		dto.Customer.Name, dto.Customer.Email, dto.Customer.Phone, dto.Customer.IsGuest)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := kernel.MoneyFromString(itemDTO.UnitPrice, itemDTO.Currency)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Name, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.MoneyFromString(dto.Subtotal, dto.Currency)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.MoneyFromString(dto.Tax, dto.Currency)
	if err != nil {
		return nil, err
	}
	total, err := kernel.MoneyFromString(dto.Total, dto.Currency)
	if err != nil {
		return nil, err
	}

	amountPaid, err := kernel.MoneyFromString(dto.Payment.AmountPaid, dto.Currency)
	if err != nil {
		return nil, err
	}
	payment, err := order.NewPayment(
		order.PaymentMethod(dto.Payment.Method),
		order.PaymentStatus(dto.Payment.Status),
		amountPaid,
		dto.Payment.TransactionID,
	)
	if err != nil {
		return nil, err
	}

	cost, err := kernel.MoneyFromString(dto.Shipping.Cost, dto.Currency)
	if err != nil {
		return nil, err
	}
	shipping, err := order.NewShipping(
		order.ShippingMethod(dto.Shipping.Method),
		order.Address{
			Line1:      dto.Shipping.AddressLine1,
			Line2:      dto.Shipping.AddressLine2,
			City:       dto.Shipping.City,
			State:      dto.Shipping.State,
			PostalCode: dto.Shipping.PostalCode,
			Country:    dto.Shipping.Country,
		},
		cost,
		dto.Shipping.TrackingNumber,
	)
	if err != nil {
		return nil, err
	}

	timeline := make([]order.TimelineEntry, 0, len(dto.Timeline))
	for _, entryDTO := range dto.Timeline {
		entry, entryErr := order.NewTimelineEntry(
			order.Status(entryDTO.Status), entryDTO.Timestamp, entryDTO.Note, entryDTO.CreatedBy)
		if entryErr != nil {
			return nil, entryErr
		}
		timeline = append(timeline, entry)
	}

	return order.RestoreOrder(
		id, tenantID,
		dto.OrderNumber, dto.IdempotencyKey,
		customer, items,
		subtotal, tax, total,
		order.Status(dto.Status),
		payment, shipping,
		timeline,
		dto.Notes, dto.Source,
		dto.Metadata,
		dto.CreatedAt,
	)
}
