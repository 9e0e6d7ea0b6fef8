package sales

import (
	"context"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository defines persistence for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*Order, error)
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Order], error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleRepository defines persistence for sales tickets
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*Sale, error)
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Sale], error)
	// RevenueForSiteBetween sums completed sale totals in a period
	RevenueForSiteBetween(ctx context.Context, siteID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	CountForSiteBetween(ctx context.Context, siteID uuid.UUID, from, to time.Time) (int64, error)
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
}
