// Package eventrepo persists domain events as a transactional outbox.
// Events are written in the same transaction as the order mutation that
// produced them and relayed to the publisher asynchronously.
package eventrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/core/domain/events"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// Outbox dispatch states.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// maxDispatchAttempts is how many delivery failures an event survives before
// it is parked as failed and needs operator attention.
const maxDispatchAttempts = 5

// EventDTO represents the database structure for the event outbox. The event
// id is a ULID, so the primary key sorts in creation order.
type EventDTO struct {
	EventID     string    `gorm:"primaryKey;size:26"`
	EventType   string    `gorm:"index"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber string
	Timestamp   time.Time

	Data     JSONMap `gorm:"type:jsonb"`
	Metadata JSONMap `gorm:"type:jsonb"`

	Status       string `gorm:"index;default:pending"`
	RetryCount   int
	LastError    string
	DispatchedAt *time.Time
}

// TableName specifies the database table name for outbox entries.
func (EventDTO) TableName() string {
	return "order_events"
}

// JSONMap marshals a free-form payload map into a jsonb column.
// A nil map round-trips as SQL NULL, preserving the "no metadata" case.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// fromDomain converts a domain event to its outbox representation.
func fromDomain(event events.Event) EventDTO {
	return EventDTO{
		EventID:     event.EventID,
		EventType:   event.EventType,
		TenantID:    event.TenantID.Bytes(),
		OrderID:     event.OrderID.Bytes(),
		OrderNumber: event.OrderNumber,
		Timestamp:   event.Timestamp,
		Data:        event.Data,
		Metadata:    event.Metadata,
		Status:      StatusPending,
	}
}

// toDomain converts an outbox entry back to a domain event.
func toDomain(dto EventDTO) (events.Event, error) {
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return events.Event{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return events.Event{}, err
	}

	return events.Event{
		EventID:     dto.EventID,
		EventType:   dto.EventType,
		TenantID:    tenantID,
		OrderID:     orderID,
		OrderNumber: dto.OrderNumber,
		Timestamp:   dto.Timestamp,
		Data:        dto.Data,
		Metadata:    dto.Metadata,
	}, nil
}
