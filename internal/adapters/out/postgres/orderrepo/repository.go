package orderrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// Every query is filtered by tenant id; an order belonging to another tenant
// is reported as not found.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Mutable columns are written
// through an explicit column map: the struct form of Updates skips zero-valued
// fields, which would silently drop a patch that clears a text column.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// mutableColumns maps every column an update may change, zero values included.
// Identity columns (id, tenant_id, order_number, idempotency_key, created_at)
// never change after creation and stay out of the statement.
func mutableColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"customer_name":     dto.Customer.Name,
		"customer_email":    dto.Customer.Email,
		"customer_phone":    dto.Customer.Phone,
		"customer_is_guest": dto.Customer.IsGuest,

		"payment_method":         dto.Payment.Method,
		"payment_status":         dto.Payment.Status,
		"payment_amount_paid":    dto.Payment.AmountPaid,
		"payment_transaction_id": dto.Payment.TransactionID,

		"shipping_method":          dto.Shipping.Method,
		"shipping_address_line1":   dto.Shipping.AddressLine1,
		"shipping_address_line2":   dto.Shipping.AddressLine2,
		"shipping_city":            dto.Shipping.City,
		"shipping_state":           dto.Shipping.State,
		"shipping_postal_code":     dto.Shipping.PostalCode,
		"shipping_country":         dto.Shipping.Country,
		"shipping_cost":            dto.Shipping.Cost,
		"shipping_tracking_number": dto.Shipping.TrackingNumber,

		"subtotal": dto.Subtotal,
		"tax":      dto.Tax,
		"total":    dto.Total,
		"currency": dto.Currency,

		"status":   dto.Status,
		"items":    dto.Items,
		"timeline": dto.Timeline,
		"metadata": dto.Metadata,
		"notes":    dto.Notes,
		"source":   dto.Source,
	}
}

// Get retrieves an order by ID within the tenant.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-facing order number within the tenant.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, tenantID kernel.UUID, orderNumber string) (*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_number = ? AND tenant_id = ?", orderNumber, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order number", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIdempotencyKey retrieves the order created with the given idempotency key.
func (r *GormOrderRepository) GetByIdempotencyKey(ctx context.Context, tenantID kernel.UUID, key string) (*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "idempotency_key = ? AND tenant_id = ?", key, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("idempotency key", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForTenant retrieves every order of the tenant, oldest first.
func (r *GormOrderRepository) GetAllForTenant(ctx context.Context, tenantID kernel.UUID) ([]*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "tenant_id = ?", tenantID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes an order from the database within the tenant.
func (r *GormOrderRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Delete(&OrderDTO{}, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}
