package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogStats is the aggregate read model computed over a site's
// active products.
type CatalogStats struct {
	ProductCount    int64
	StockValue      decimal.Decimal
	LowStockCount   int64
	OutOfStockCount int64
}

// DashboardResponse is the per-site aggregate served to the frontend
type DashboardResponse struct {
	SiteID            uuid.UUID       `json:"site_id"`
	ProductCount      int64           `json:"product_count"`
	StockValue        decimal.Decimal `json:"stock_value"`
	LowStockCount     int64           `json:"low_stock_count"`
	OutOfStockCount   int64           `json:"out_of_stock_count"`
	TransactionsToday int64           `json:"transactions_today"`
	SalesToday        int64           `json:"sales_today"`
	RevenueToday      decimal.Decimal `json:"revenue_today"`
	PlanCode          string          `json:"plan_code"`
	GeneratedAt       time.Time       `json:"generated_at"`
	Cached            bool            `json:"cached"`
}
