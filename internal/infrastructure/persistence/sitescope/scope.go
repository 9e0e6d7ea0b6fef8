// Package sitescope provides multi-site database scoping for GORM.
//
// This package implements automatic site_id filtering to prevent cross-site
// data access at the repository layer. It extracts the site ID from the request
// context and automatically applies WHERE site_id = ? conditions to all queries.
//
// Usage:
//
//	db := sitescope.NewSiteDB(gormDB)
//	scopedDB := db.WithContext(ctx) // automatically applies site filtering
//	scopedDB.Find(&products) // WHERE site_id = 'xxx' is auto-added
package sitescope

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSiteIDRequired is returned when site_id is required but not found
var ErrSiteIDRequired = errors.New("site_id is required but not found in context")

// ErrInvalidSiteID is returned when site_id format is invalid
var ErrInvalidSiteID = errors.New("invalid site_id format")

// SiteScope applies site filtering to GORM queries
func SiteScope(siteID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("site_id = ?", siteID)
	}
}

// SiteScopeString applies site filtering using string site ID
func SiteScopeString(siteID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("site_id = ?", siteID)
	}
}

// SiteCreateScope sets site_id on create operations
func SiteCreateScope(siteID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Set("site_id", siteID)
	}
}

// SiteDB wraps GORM DB with automatic site scoping
type SiteDB struct {
	db           *gorm.DB
	siteColumn string
	required     bool
}

// Config holds configuration for SiteDB
type Config struct {
	// SiteColumn is the name of the site ID column (default: "site_id")
	SiteColumn string
	// Required determines if site_id is mandatory (default: true)
	Required bool
}

// DefaultConfig returns default SiteDB configuration
func DefaultConfig() Config {
	return Config{
		SiteColumn: "site_id",
		Required:     true,
	}
}

// NewSiteDB creates a new SiteDB with default configuration
func NewSiteDB(db *gorm.DB) *SiteDB {
	return NewSiteDBWithConfig(db, DefaultConfig())
}

// NewSiteDBWithConfig creates a new SiteDB with custom configuration
func NewSiteDBWithConfig(db *gorm.DB, cfg Config) *SiteDB {
	if cfg.SiteColumn == "" {
		cfg.SiteColumn = "site_id"
	}
	return &SiteDB{
		db:           db,
		siteColumn: cfg.SiteColumn,
		required:     cfg.Required,
	}
}

// DB returns the underlying GORM DB without site scoping
// Use with caution - this bypasses site isolation
func (t *SiteDB) DB() *gorm.DB {
	return t.db
}

// WithContext returns a GORM DB scoped to the site from context.
// It extracts site_id from the context (set by site middleware)
// and automatically applies the site filter to all queries.
//
// If site_id is not found in context and Required is true, it returns
// a DB that will error on any operation.
func (t *SiteDB) WithContext(ctx context.Context) *gorm.DB {
	siteID := logger.GetSiteID(ctx)

	if siteID == "" {
		if t.required {
			// Return a DB that will error on execution
			db := t.db.WithContext(ctx)
			_ = db.AddError(ErrSiteIDRequired)
			return db
		}
		// If not required, return DB without site scope
		return t.db.WithContext(ctx)
	}

	// Validate UUID format
	if _, err := uuid.Parse(siteID); err != nil {
		db := t.db.WithContext(ctx)
		_ = db.AddError(ErrInvalidSiteID)
		return db
	}

	// Apply site scope
	return t.db.WithContext(ctx).Scopes(SiteScopeString(siteID))
}

// WithSite returns a GORM DB scoped to a specific site ID.
// Use this when you have the site ID directly rather than from context.
func (t *SiteDB) WithSite(siteID uuid.UUID) *gorm.DB {
	if siteID == uuid.Nil {
		if t.required {
			db := t.db
			_ = db.AddError(ErrSiteIDRequired)
			return db
		}
		return t.db
	}
	return t.db.Scopes(SiteScope(siteID))
}

// WithSiteString returns a GORM DB scoped to a specific site ID string.
func (t *SiteDB) WithSiteString(siteID string) *gorm.DB {
	if siteID == "" {
		if t.required {
			db := t.db
			_ = db.AddError(ErrSiteIDRequired)
			return db
		}
		return t.db
	}

	// Validate UUID format
	if _, err := uuid.Parse(siteID); err != nil {
		db := t.db
		_ = db.AddError(ErrInvalidSiteID)
		return db
	}

	return t.db.Scopes(SiteScopeString(siteID))
}

// ForSite creates a new SiteDB instance scoped to a specific context.
// This is useful for creating a scoped DB that can be passed around.
func (t *SiteDB) ForSite(ctx context.Context, siteID uuid.UUID) *gorm.DB {
	return t.db.WithContext(ctx).Scopes(SiteScope(siteID))
}

// Transaction executes a function within a database transaction with site scope
func (t *SiteDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	siteID := logger.GetSiteID(ctx)

	if siteID == "" && t.required {
		return ErrSiteIDRequired
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if siteID != "" {
			tx = tx.Scopes(SiteScopeString(siteID))
		}
		return fn(tx)
	})
}

// Unscoped returns the underlying DB without any site scoping.
// WARNING: Use this with extreme caution as it bypasses site isolation.
// This should only be used for system-level operations or migrations.
func (t *SiteDB) Unscoped() *gorm.DB {
	return t.db
}

// SetRequired changes whether site_id is required
func (t *SiteDB) SetRequired(required bool) *SiteDB {
	return &SiteDB{
		db:           t.db,
		siteColumn: t.siteColumn,
		required:     required,
	}
}
