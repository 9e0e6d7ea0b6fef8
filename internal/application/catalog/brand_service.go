package catalog

import (
	"context"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BrandService handles brand operations
type BrandService struct {
	brandRepo catalog.BrandRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// Create creates a brand
func (s *BrandService) Create(ctx context.Context, siteID uuid.UUID, req CreateBrandRequest) (*BrandResponse, error) {
	brand, err := catalog.NewBrand(siteID, req.Name)
	if err != nil {
		return nil, err
	}
	brand.SetDescription(req.Description)
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// GetByID retrieves a brand scoped to the site
func (s *BrandService) GetByID(ctx context.Context, siteID, brandID uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByIDForSite(ctx, brandID, siteID)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// List retrieves the site's brands
func (s *BrandService) List(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[BrandResponse], error) {
	page, err := s.brandRepo.FindAllForSite(ctx, siteID, filter)
	if err != nil {
		return shared.Paginated[BrandResponse]{}, err
	}
	items := make([]BrandResponse, 0, len(page.Items))
	for _, b := range page.Items {
		items = append(items, ToBrandResponse(b))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Update updates a brand
func (s *BrandService) Update(ctx context.Context, siteID, brandID uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByIDForSite(ctx, brandID, siteID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := brand.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		brand.SetDescription(*req.Description)
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// Delete removes a brand. Brands still referenced by products are
// protected.
func (s *BrandService) Delete(ctx context.Context, siteID, brandID uuid.UUID) error {
	brand, err := s.brandRepo.FindByIDForSite(ctx, brandID, siteID)
	if err != nil {
		return err
	}
	hasProducts, err := s.brandRepo.HasProducts(ctx, brand.ID)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.ErrProtectedDelete
	}
	return s.brandRepo.Delete(ctx, brand.ID)
}
