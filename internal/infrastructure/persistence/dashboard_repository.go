package persistence

import (
	"context"

	"github.com/bolibana/backend/internal/application/dashboard"
	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardRepository computes dashboard aggregates with a single
// grouped query over the products table.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

var _ dashboard.StatsRepository = (*GormDashboardRepository)(nil)

type catalogStatsRow struct {
	ProductCount    int64
	StockValue      decimal.Decimal
	LowStockCount   int64
	OutOfStockCount int64
}

// CatalogStats aggregates the active products of a site.
// CASE expressions instead of FILTER keep the query portable to the
// sqlite test database.
func (r *GormDashboardRepository) CatalogStats(ctx context.Context, siteID uuid.UUID) (*dashboard.CatalogStats, error) {
	var row catalogStatsRow
	err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Select(`COUNT(*) AS product_count,
			COALESCE(SUM(quantity * purchase_price), 0) AS stock_value,
			COALESCE(SUM(CASE WHEN quantity > 0 AND quantity <= alert_threshold THEN 1 ELSE 0 END), 0) AS low_stock_count,
			COALESCE(SUM(CASE WHEN quantity <= 0 THEN 1 ELSE 0 END), 0) AS out_of_stock_count`).
		Where("site_id = ? AND is_active = ?", siteID, true).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &dashboard.CatalogStats{
		ProductCount:    row.ProductCount,
		StockValue:      row.StockValue,
		LowStockCount:   row.LowStockCount,
		OutOfStockCount: row.OutOfStockCount,
	}, nil
}
