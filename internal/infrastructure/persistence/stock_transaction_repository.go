package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements stock.Repository using GORM.
// The ledger is append-only, so the repository exposes no update or
// delete operation.
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormStockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Transaction, error) {
	var tx stock.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAllForSite finds ledger entries belonging to a site with pagination
func (r *GormStockTransactionRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*stock.Transaction], error) {
	query := r.db.WithContext(ctx).Model(&stock.Transaction{}).
		Where("site_id = ?", siteID)
	query = r.applyFilters(query, filter)
	return r.paginate(query, filter)
}

// FindByProduct finds ledger entries for a product with pagination.
// The site filter keeps one site's ledger invisible to another even
// when the caller guesses a foreign product id.
func (r *GormStockTransactionRepository) FindByProduct(ctx context.Context, siteID, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*stock.Transaction], error) {
	query := r.db.WithContext(ctx).Model(&stock.Transaction{}).
		Where("site_id = ?", siteID).
		Where("product_id = ?", productID)
	query = r.applyFilters(query, filter)
	return r.paginate(query, filter)
}

// SumQuantityForProduct sums signed quantities over the product's whole
// history, reconstructing its current stock level.
func (r *GormStockTransactionRepository) SumQuantityForProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&stock.Transaction{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// CountForSiteSince counts ledger entries for a site recorded at or
// after the given instant
func (r *GormStockTransactionRepository) CountForSiteSince(ctx context.Context, siteID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&stock.Transaction{}).
		Where("site_id = ?", siteID).
		Where("transaction_date >= ?", since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends a ledger entry
func (r *GormStockTransactionRepository) Save(ctx context.Context, tx *stock.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *GormStockTransactionRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if txType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", txType)
	}
	if from, ok := filter.Filters["from"]; ok {
		query = query.Where("transaction_date >= ?", from)
	}
	if to, ok := filter.Filters["to"]; ok {
		query = query.Where("transaction_date < ?", to)
	}
	return query
}

func (r *GormStockTransactionRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[*stock.Transaction], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*stock.Transaction]{}, err
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, TransactionSortFields, "transaction_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	var entries []*stock.Transaction
	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&entries).Error; err != nil {
		return shared.Paginated[*stock.Transaction]{}, err
	}

	return shared.NewPaginated(entries, total, filter.Page, filter.PageSize), nil
}

var _ stock.Repository = (*GormStockTransactionRepository)(nil)
