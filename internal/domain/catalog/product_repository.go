package catalog

import (
	"context"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence for products and their barcodes.
// CUG and EAN lookups are global because both codes are unique across
// the installation; everything else is site-scoped.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*Product, error)
	FindByCUG(ctx context.Context, cug string) (*Product, error)
	// FindByEAN resolves a scanned code against the barcode table and
	// the legacy inline barcode field.
	FindByEAN(ctx context.Context, ean string) (*Product, error)
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Product], error)
	// FindIDsForSiteByCreation returns product IDs in creation order,
	// the stable ordering used to determine excess products.
	FindIDsForSiteByCreation(ctx context.Context, siteID uuid.UUID) ([]uuid.UUID, error)
	FindLowStockForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Product], error)
	CountForSite(ctx context.Context, siteID uuid.UUID) (int64, error)
	ExistsByCUG(ctx context.Context, cug string) (bool, error)
	// EANInUse checks an EAN against both the barcode table and every
	// product's legacy field, excluding the given product.
	EANInUse(ctx context.Context, ean string, excludeProductID uuid.UUID) (bool, error)
	HasStockHistory(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines persistence for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*Category, error)
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Category], error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*Category, error)
	HasProducts(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandRepository defines persistence for brands
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*Brand, error)
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Brand], error)
	HasProducts(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}
