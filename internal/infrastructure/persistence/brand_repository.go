package persistence

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBrandRepository implements catalog.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by its ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	var brand catalog.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindByIDForSite finds a brand by ID scoped to a site
func (r *GormBrandRepository) FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*catalog.Brand, error) {
	var brand catalog.Brand
	if err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

// FindAllForSite finds brands belonging to a site with pagination
func (r *GormBrandRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Brand], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Brand{}).
		Where("site_id = ?", siteID)

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.Brand]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, BrandSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var brands []*catalog.Brand
	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&brands).Error; err != nil {
		return shared.Paginated[*catalog.Brand]{}, err
	}

	return shared.NewPaginated(brands, total, filter.Page, filter.PageSize), nil
}

// HasProducts reports whether any product references the brand
func (r *GormBrandRepository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("brand_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

// Delete deletes a brand
func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Brand{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.BrandRepository = (*GormBrandRepository)(nil)
