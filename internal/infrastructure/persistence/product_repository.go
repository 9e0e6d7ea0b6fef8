package persistence

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID with barcodes preloaded
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).Preload("Barcodes").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForSite finds a product by ID scoped to a site
func (r *GormProductRepository) FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).Preload("Barcodes").
		Where("site_id = ?", siteID).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCUG finds a product by its CUG code. CUGs are unique across
// the installation, so the lookup is not site scoped.
func (r *GormProductRepository) FindByCUG(ctx context.Context, cug string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).Preload("Barcodes").
		Where("cug = ?", cug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByEAN resolves a scanned code against the barcode table first,
// then against the legacy inline barcode field.
func (r *GormProductRepository) FindByEAN(ctx context.Context, ean string) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).Preload("Barcodes").
		Joins("JOIN barcodes ON barcodes.product_id = products.id").
		Where("barcodes.ean = ?", ean).
		First(&product).Error
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Preload("Barcodes").
		Where("legacy_barcode = ?", ean).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAllForSite finds products belonging to a site with pagination
func (r *GormProductRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("site_id = ?", siteID)

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR cug ILIKE ? OR description ILIKE ?", keyword, keyword, keyword)
	}
	query = r.applyFilters(query, filter)

	return r.paginate(query, filter)
}

func (r *GormProductRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}
	if brandID, ok := filter.Filters["brand_id"]; ok {
		query = query.Where("brand_id = ?", brandID)
	}
	if isActive, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", isActive)
	}
	// Quota enforcement passes id sets: excess products are hidden from
	// default listings, and the excess view selects only them.
	if ids, ok := filter.Filters["exclude_ids"].([]uuid.UUID); ok && len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}
	if ids, ok := filter.Filters["only_ids"].([]uuid.UUID); ok {
		query = query.Where("id IN ?", ids)
	}
	return query
}

// FindIDsForSiteByCreation returns product IDs in creation order. This
// is the stable ordering used to decide which products fall outside a
// plan's limit after a downgrade.
func (r *GormProductRepository) FindIDsForSiteByCreation(ctx context.Context, siteID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("site_id = ?", siteID).
		Order("created_at ASC, id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FindLowStockForSite finds active products at or below their alert threshold
func (r *GormProductRepository) FindLowStockForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("site_id = ?", siteID).
		Where("is_active = ?", true).
		Where("quantity <= alert_threshold")
	query = r.applyFilters(query, filter)

	return r.paginate(query, filter)
}

// CountForSite counts products belonging to a site
func (r *GormProductRepository) CountForSite(ctx context.Context, siteID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("site_id = ?", siteID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCUG checks if a product with the given CUG exists
func (r *GormProductRepository) ExistsByCUG(ctx context.Context, cug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("cug = ?", cug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EANInUse checks an EAN against the barcode table and every product's
// legacy field, excluding the given product and its own barcodes.
func (r *GormProductRepository) EANInUse(ctx context.Context, ean string, excludeProductID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Barcode{}).
		Where("ean = ?", ean).
		Where("product_id <> ?", excludeProductID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("legacy_barcode = ?", ean).
		Where("id <> ?", excludeProductID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasStockHistory reports whether any ledger entry references the product
func (r *GormProductRepository) HasStockHistory(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&stock.Transaction{}).
		Where("product_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product with its barcodes
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
}

// Delete deletes a product. Barcodes cascade at the database level.
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.Product]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var products []*catalog.Product
	if err := query.Preload("Barcodes").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&products).Error; err != nil {
		return shared.Paginated[*catalog.Product]{}, err
	}

	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
