package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/site"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSiteRepository implements site.Repository using GORM
type GormSiteRepository struct {
	db *gorm.DB
}

// NewGormSiteRepository creates a new GormSiteRepository
func NewGormSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

// FindByID finds a site by its ID
func (r *GormSiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*site.Site, error) {
	var s site.Site
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByName finds a site by its unique name, case-insensitively
func (r *GormSiteRepository) FindByName(ctx context.Context, name string) (*site.Site, error) {
	var s site.Site
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds all sites matching the filter
func (r *GormSiteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]site.Site, error) {
	var sites []site.Site
	query := r.db.WithContext(ctx).Model(&site.Site{})

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR branding_address ILIKE ?", keyword, keyword)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, SiteSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// ExistsByName checks if a site with the given name exists
func (r *GormSiteRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&site.Site{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a site
func (r *GormSiteRepository) Save(ctx context.Context, s *site.Site) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Delete deletes a site
func (r *GormSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&site.Site{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all sites
func (r *GormSiteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&site.Site{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ site.Repository = (*GormSiteRepository)(nil)
