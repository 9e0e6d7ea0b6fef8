package catalog

import (
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Brand is a flat per-site label attached to products
type Brand struct {
	shared.SiteAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a brand
func NewBrand(siteID uuid.UUID, name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}
	return &Brand{
		SiteAggregateRoot: shared.NewSiteAggregateRoot(siteID),
		Name:              name,
	}, nil
}

// Rename changes the brand name
func (b *Brand) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}
	b.Name = name
	b.touch()
	return nil
}

// SetDescription updates the description
func (b *Brand) SetDescription(description string) {
	b.Description = strings.TrimSpace(description)
	b.touch()
}

func (b *Brand) touch() {
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
