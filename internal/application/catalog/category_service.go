package catalog

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a category
func (s *CategoryService) Create(ctx context.Context, siteID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(siteID, req.Name)
	if err != nil {
		return nil, err
	}
	category.SetDescription(req.Description)
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByIDForSite(ctx, *req.ParentID, siteID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category scoped to the site
func (s *CategoryService) GetByID(ctx context.Context, siteID, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForSite(ctx, categoryID, siteID)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves the site's categories
func (s *CategoryService) List(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[CategoryResponse], error) {
	page, err := s.categoryRepo.FindAllForSite(ctx, siteID, filter)
	if err != nil {
		return shared.Paginated[CategoryResponse]{}, err
	}
	items := make([]CategoryResponse, 0, len(page.Items))
	for _, c := range page.Items {
		items = append(items, ToCategoryResponse(c))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// ListChildren retrieves the sub-categories of a rayon
func (s *CategoryService) ListChildren(ctx context.Context, siteID, categoryID uuid.UUID) ([]CategoryResponse, error) {
	parent, err := s.categoryRepo.FindByIDForSite(ctx, categoryID, siteID)
	if err != nil {
		return nil, err
	}
	children, err := s.categoryRepo.FindChildren(ctx, parent.ID)
	if err != nil {
		return nil, err
	}
	items := make([]CategoryResponse, 0, len(children))
	for _, c := range children {
		items = append(items, ToCategoryResponse(c))
	}
	return items, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, siteID, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForSite(ctx, categoryID, siteID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := category.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		category.SetDescription(*req.Description)
	}
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByIDForSite(ctx, *req.ParentID, siteID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category. Categories holding products or children
// are protected.
func (s *CategoryService) Delete(ctx context.Context, siteID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByIDForSite(ctx, categoryID, siteID)
	if err != nil {
		return err
	}
	hasProducts, err := s.categoryRepo.HasProducts(ctx, category.ID)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.ErrProtectedDelete
	}
	children, err := s.categoryRepo.FindChildren(ctx, category.ID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.ErrProtectedDelete
	}
	return s.categoryRepo.Delete(ctx, category.ID)
}
