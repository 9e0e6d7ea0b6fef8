package sitescope

import (
	"strings"

	"github.com/bolibana/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteCallback provides GORM callback hooks for automatic site filtering
type SiteCallback struct {
	siteColumn string
	required     bool
}

// NewSiteCallback creates a new site callback handler
func NewSiteCallback(siteColumn string, required bool) *SiteCallback {
	if siteColumn == "" {
		siteColumn = "site_id"
	}
	return &SiteCallback{
		siteColumn: siteColumn,
		required:     required,
	}
}

// RegisterCallbacks registers site callbacks with GORM
func (tc *SiteCallback) RegisterCallbacks(db *gorm.DB) {
	// Register query callback - add site filter
	_ = db.Callback().Query().Before("gorm:query").Register("site:before_query", tc.beforeQuery)

	// Register update callback - ensure site filter
	_ = db.Callback().Update().Before("gorm:update").Register("site:before_update", tc.beforeUpdate)

	// Register delete callback - ensure site filter
	_ = db.Callback().Delete().Before("gorm:delete").Register("site:before_delete", tc.beforeDelete)

	// Register row query callback - add site filter
	_ = db.Callback().Row().Before("gorm:row").Register("site:before_row", tc.beforeQuery)

	// Note: Create callback is not registered because site_id should be set
	// explicitly by the application when creating entities
}

// beforeQuery adds site filter to SELECT queries
func (tc *SiteCallback) beforeQuery(db *gorm.DB) {
	tc.addSiteFilter(db)
}

// beforeUpdate adds site filter to UPDATE queries
func (tc *SiteCallback) beforeUpdate(db *gorm.DB) {
	tc.addSiteFilter(db)
}

// beforeDelete adds site filter to DELETE queries
func (tc *SiteCallback) beforeDelete(db *gorm.DB) {
	tc.addSiteFilter(db)
}

// addSiteFilter adds site filtering to the query
func (tc *SiteCallback) addSiteFilter(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}

	// Skip if unscoped
	if db.Statement.Unscoped {
		return
	}

	// Skip if already has site condition
	if tc.hasSiteCondition(db) {
		return
	}

	// Get site ID from context
	siteID := logger.GetSiteID(db.Statement.Context)
	if siteID == "" {
		if tc.required {
			_ = db.AddError(ErrSiteIDRequired)
		}
		return
	}

	// Validate UUID format
	if _, err := uuid.Parse(siteID); err != nil {
		_ = db.AddError(ErrInvalidSiteID)
		return
	}

	// Add site filter using GORM's clause
	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: tc.siteColumn},
				Value:  siteID,
			},
		},
	})
}

// hasSiteCondition checks if site_id condition is already present
func (tc *SiteCallback) hasSiteCondition(db *gorm.DB) bool {
	// Check if there's a manual scope applied via Unscoped
	if db.Statement.Unscoped {
		return true
	}

	// Check existing where clauses for site_id
	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if tc.exprContainsSite(expr) {
					return true
				}
			}
		}
	}

	// Also check the built SQL if available
	sql := db.Statement.SQL.String()
	if sql != "" && strings.Contains(sql, tc.siteColumn) {
		return true
	}

	return false
}

// exprContainsSite checks if an expression contains site_id column
func (tc *SiteCallback) exprContainsSite(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == tc.siteColumn
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == tc.siteColumn
		}
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if tc.exprContainsSite(cond) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if tc.exprContainsSite(cond) {
				return true
			}
		}
	}
	return false
}

// EnableAutoSiteFilter enables automatic site filtering on a GORM DB instance
// This registers callbacks that automatically add site_id filtering to all queries
func EnableAutoSiteFilter(db *gorm.DB, required bool) {
	tc := NewSiteCallback("site_id", required)
	tc.RegisterCallbacks(db)
}

// DisableAutoSiteFilter removes the site callbacks (not recommended in production)
func DisableAutoSiteFilter(db *gorm.DB) {
	// Note: GORM doesn't provide a clean way to remove callbacks
	// This is mainly for testing purposes
	_ = db.Callback().Query().Remove("site:before_query")
	_ = db.Callback().Update().Remove("site:before_update")
	_ = db.Callback().Delete().Remove("site:before_delete")
	_ = db.Callback().Row().Remove("site:before_row")
}
