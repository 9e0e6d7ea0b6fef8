package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID with items preloaded
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByIDForSite finds a sale by ID scoped to a site
func (r *GormSaleRepository) FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("site_id = ?", siteID).
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAllForSite finds sales belonging to a site with pagination
func (r *GormSaleRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*sales.Sale], error) {
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Where("site_id = ?", siteID)

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR customer_name ILIKE ?", keyword, keyword)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if payment, ok := filter.Filters["payment_method"]; ok {
		query = query.Where("payment_method = ?", payment)
	}
	if cashierID, ok := filter.Filters["cashier_id"]; ok {
		query = query.Where("cashier_id = ?", cashierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*sales.Sale]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var items []*sales.Sale
	if err := query.Preload("Items").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&items).Error; err != nil {
		return shared.Paginated[*sales.Sale]{}, err
	}

	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// RevenueForSiteBetween sums completed sale totals in a period
func (r *GormSaleRepository) RevenueForSiteBetween(ctx context.Context, siteID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Where("site_id = ?", siteID).
		Where("status = ?", sales.SaleStatusCompleted).
		Where("completed_at >= ? AND completed_at < ?", from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error; err != nil {
		return decimal.Zero, err
	}
	return revenue, nil
}

// CountForSiteBetween counts completed sales in a period
func (r *GormSaleRepository) CountForSiteBetween(ctx context.Context, siteID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Where("site_id = ?", siteID).
		Where("status = ?", sales.SaleStatusCompleted).
		Where("completed_at >= ? AND completed_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a sale with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(sale).Error
}

// Delete deletes a sale. Items cascade at the database level.
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sales.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
