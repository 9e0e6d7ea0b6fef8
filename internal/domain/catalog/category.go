package catalog

import (
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category groups products hierarchically within one site
type Category struct {
	shared.SiteAggregateRoot
	Name        string     `gorm:"type:varchar(100);not null;index"`
	Description string     `gorm:"type:varchar(500)"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder   int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a root category
func NewCategory(siteID uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return &Category{
		SiteAggregateRoot: shared.NewSiteAggregateRoot(siteID),
		Name:              name,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	c.Name = name
	c.touch()
	return nil
}

// SetDescription updates the description
func (c *Category) SetDescription(description string) {
	c.Description = strings.TrimSpace(description)
	c.touch()
}

// SetParent moves the category under another one, nil makes it a root.
// Cycle detection beyond self-reference is the repository's concern.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.touch()
	return nil
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func (c *Category) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
