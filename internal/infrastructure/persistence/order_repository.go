package persistence

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with items preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	var order sales.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForSite finds an order by ID scoped to a site
func (r *GormOrderRepository) FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*sales.Order, error) {
	var order sales.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("site_id = ?", siteID).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForSite finds orders belonging to a site with pagination
func (r *GormOrderRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*sales.Order], error) {
	query := r.db.WithContext(ctx).Model(&sales.Order{}).
		Where("site_id = ?", siteID)

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR counterparty ILIKE ?", keyword, keyword)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if orderType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", orderType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*sales.Order]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var orders []*sales.Order
	if err := query.Preload("Items").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&orders).Error; err != nil {
		return shared.Paginated[*sales.Order]{}, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates an order with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// Delete deletes an order. Items cascade at the database level.
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sales.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ sales.OrderRepository = (*GormOrderRepository)(nil)
