package stock

import (
	"context"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines persistence for the stock ledger. Entries are
// append-only; there is no update or delete.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Transaction], error)
	FindByProduct(ctx context.Context, siteID, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*Transaction], error)
	// SumQuantityForProduct sums signed quantities, reconstructing the
	// product's current stock from its history.
	SumQuantityForProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
	CountForSiteSince(ctx context.Context, siteID uuid.UUID, since time.Time) (int64, error)
	Save(ctx context.Context, tx *Transaction) error
}
