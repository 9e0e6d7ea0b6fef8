package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPlanRepository implements subscription.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error) {
	var plan subscription.Plan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindByCode finds a plan by its unique code
func (r *GormPlanRepository) FindByCode(ctx context.Context, code string) (*subscription.Plan, error) {
	var plan subscription.Plan
	if err := r.db.WithContext(ctx).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAll finds all plans with pagination
func (r *GormPlanRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*subscription.Plan], error) {
	query := r.db.WithContext(ctx).Model(&subscription.Plan{})

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", keyword, keyword)
	}
	if isActive, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", isActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*subscription.Plan]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, PlanSortFields, "monthly_price")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var plans []*subscription.Plan
	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&plans).Error; err != nil {
		return shared.Paginated[*subscription.Plan]{}, err
	}

	return shared.NewPaginated(plans, total, filter.Page, filter.PageSize), nil
}

// ExistsByCode checks if a plan with the given code exists
func (r *GormPlanRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&subscription.Plan{}).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *subscription.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete deletes a plan
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&subscription.Plan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ subscription.PlanRepository = (*GormPlanRepository)(nil)

// GormSubscriptionRepository implements subscription.Repository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindAllForSite finds subscriptions belonging to a site with pagination
func (r *GormSubscriptionRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*subscription.Subscription], error) {
	query := r.db.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("site_id = ?", siteID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*subscription.Subscription]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, SubscriptionSortFields, "starts_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var subs []*subscription.Subscription
	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&subs).Error; err != nil {
		return shared.Paginated[*subscription.Subscription]{}, err
	}

	return shared.NewPaginated(subs, total, filter.Page, filter.PageSize), nil
}

// FindActiveForSite returns the active subscription whose period covers
// the given instant, newest first when several overlap
func (r *GormSubscriptionRepository) FindActiveForSite(ctx context.Context, siteID uuid.UUID, now time.Time) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Where("status = ?", subscription.StatusActive).
		Where("starts_at <= ? AND ends_at > ?", now, now).
		Order("starts_at DESC").
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// Delete deletes a subscription
func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&subscription.Subscription{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ subscription.Repository = (*GormSubscriptionRepository)(nil)
