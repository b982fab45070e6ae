package eventrepo

import (
	"context"

	"storefront/internal/core/domain/events"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEventRepository implements the event outbox using GORM.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM event outbox repository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Add stores a domain event as pending dispatch.
func (r *GormEventRepository) Add(ctx context.Context, event events.Event) error {
	if event.EventID == "" {
		return errs.NewValueIsRequiredError("event id")
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending retrieves up to limit undispatched events, oldest first.
// ULID event ids sort in creation order, so ordering by primary key is enough.
func (r *GormEventRepository) GetPending(ctx context.Context, limit int) ([]events.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("event_id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	pending := make([]events.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		pending = append(pending, event)
	}

	return pending, nil
}

// MarkSent records a successful dispatch.
func (r *GormEventRepository) MarkSent(ctx context.Context, eventID string) error {
	result := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("event_id = ?", eventID).
		Updates(map[string]any{
			"status":        StatusSent,
			"dispatched_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("event", eventID)
	}
	return nil
}

// MarkFailed records a dispatch failure. The event stays pending and eligible
// for retry until it exhausts maxDispatchAttempts, then it is parked as failed.
func (r *GormEventRepository) MarkFailed(ctx context.Context, eventID string, cause error) error {
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}

	result := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("event_id = ?", eventID).
		Updates(map[string]any{
			"retry_count": gorm.Expr("retry_count + 1"),
			"last_error":  lastError,
			"status": gorm.Expr(
				"CASE WHEN retry_count + 1 >= ? THEN ? ELSE ? END",
				maxDispatchAttempts, StatusFailed, StatusPending,
			),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("event", eventID)
	}
	return nil
}
