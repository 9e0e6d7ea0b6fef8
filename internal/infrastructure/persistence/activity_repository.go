package persistence

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/domain/activity"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormActivityRepository implements activity.Repository using GORM.
// The audit trail is append-only.
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindAllForSite finds audit entries belonging to a site with pagination
func (r *GormActivityRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*activity.Activity], error) {
	query := r.db.WithContext(ctx).Model(&activity.Activity{}).
		Where("site_id = ?", siteID)
	query = r.applyFilters(query, filter)
	return r.paginate(query, filter)
}

// FindByEntity finds audit entries touching a specific entity. The
// site filter keeps one site's audit trail invisible to another even
// when the caller guesses a foreign entity id.
func (r *GormActivityRepository) FindByEntity(ctx context.Context, siteID, entityID uuid.UUID, filter shared.Filter) (shared.Paginated[*activity.Activity], error) {
	query := r.db.WithContext(ctx).Model(&activity.Activity{}).
		Where("site_id = ?", siteID).
		Where("entity_id = ?", entityID)
	query = r.applyFilters(query, filter)
	return r.paginate(query, filter)
}

// Save appends an audit entry
func (r *GormActivityRepository) Save(ctx context.Context, entry *activity.Activity) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *GormActivityRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if action, ok := filter.Filters["action"]; ok {
		query = query.Where("action = ?", action)
	}
	if entityType, ok := filter.Filters["entity_type"]; ok {
		query = query.Where("entity_type = ?", entityType)
	}
	if actorID, ok := filter.Filters["actor_id"]; ok {
		query = query.Where("actor_id = ?", actorID)
	}
	return query
}

func (r *GormActivityRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[*activity.Activity], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*activity.Activity]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ActivitySortFields, "occurred_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var entries []*activity.Activity
	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&entries).Error; err != nil {
		return shared.Paginated[*activity.Activity]{}, err
	}

	return shared.NewPaginated(entries, total, filter.Page, filter.PageSize), nil
}

var _ activity.Repository = (*GormActivityRepository)(nil)

// GormNotificationRepository implements activity.NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity.Notification, error) {
	var n activity.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindForUser finds notifications targeting a user, including the
// site-wide ones with no user set
func (r *GormNotificationRepository) FindForUser(ctx context.Context, siteID uuid.UUID, userID uuid.UUID, unreadOnly bool, filter shared.Filter) (shared.Paginated[*activity.Notification], error) {
	query := r.db.WithContext(ctx).Model(&activity.Notification{}).
		Where("site_id = ?", siteID).
		Where("user_id = ? OR user_id IS NULL", userID)

	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*activity.Notification]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, NotificationSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var notifications []*activity.Notification
	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&notifications).Error; err != nil {
		return shared.Paginated[*activity.Notification]{}, err
	}

	return shared.NewPaginated(notifications, total, filter.Page, filter.PageSize), nil
}

// CountUnreadForUser counts unread notifications targeting a user
func (r *GormNotificationRepository) CountUnreadForUser(ctx context.Context, siteID uuid.UUID, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&activity.Notification{}).
		Where("site_id = ?", siteID).
		Where("user_id = ? OR user_id IS NULL", userID).
		Where("read_at IS NULL").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *activity.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// Delete deletes a notification
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&activity.Notification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ activity.NotificationRepository = (*GormNotificationRepository)(nil)
