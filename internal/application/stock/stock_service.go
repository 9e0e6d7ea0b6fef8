package stock

import (
	"context"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/shared/valueobject"
	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockService records ledger entries and keeps product quantities in
// step with them
type StockService struct {
	scope          TransactionScope
	ledgerRepo     stock.Repository
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService
func NewStockService(scope TransactionScope, ledgerRepo stock.Repository) *StockService {
	return &StockService{scope: scope, ledgerRepo: ledgerRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Record creates a discrete in/out/loss/backorder entry and applies its
// signed quantity to the product, all in one database transaction.
// Stock may go negative; no insufficiency check blocks the write.
func (s *StockService) Record(ctx context.Context, siteID uuid.UUID, req RecordTransactionRequest) (*TransactionResponse, error) {
	var entry *stock.Transaction

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForSite(ctx, req.ProductID, siteID)
		if err != nil {
			return err
		}

		unitPrice := product.SellingPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}

		switch stock.TransactionType(req.Type) {
		case stock.TypeIn:
			entry, err = stock.NewInbound(siteID, product.ID, req.Quantity, unitPrice, req.Notes)
		case stock.TypeOut:
			entry, err = stock.NewOutbound(siteID, product.ID, req.Quantity, unitPrice, req.Notes)
		case stock.TypeLoss:
			entry, err = stock.NewLoss(siteID, product.ID, req.Quantity, unitPrice, req.Notes)
		case stock.TypeBackorder:
			entry, err = stock.NewBackorder(siteID, product.ID, req.Quantity, unitPrice, req.Notes)
		default:
			return shared.NewDomainError("INVALID_TYPE", "Unknown transaction type")
		}
		if err != nil {
			return err
		}
		if req.UserID != nil {
			entry.SetUser(*req.UserID)
		}

		product.ApplyQuantityDelta(entry.Quantity)
		if product.IsLowStock() {
			entry.AddDomainEvent(stock.NewStockBelowThresholdEvent(
				siteID, product.ID, product.CUG, product.Quantity, product.AlertThreshold))
		}

		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		return repos.LedgerRepo().Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, entry)
	resp := ToTransactionResponse(entry)
	return &resp, nil
}

// Adjust reconciles a direct quantity edit. The product takes the new
// absolute value and the ledger stores the signed delta, so summing
// entries still reconstructs the history. Missing or unparsable input
// counts as zero.
func (s *StockService) Adjust(ctx context.Context, siteID uuid.UUID, req AdjustQuantityRequest) (*AdjustmentResponse, error) {
	var (
		entry  *stock.Transaction
		oldQty decimal.Decimal
		newQty decimal.Decimal
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForSite(ctx, req.ProductID, siteID)
		if err != nil {
			return err
		}

		parsed, err := valueobject.NewQuantityFromString(req.NewQuantity, product.Unit)
		if err != nil {
			return err
		}

		oldQty = product.Quantity
		newQty = parsed.Value()

		entry = stock.NewAdjustment(siteID, product.ID, oldQty, newQty, product.SellingPrice, req.Notes)
		if req.UserID != nil {
			entry.SetUser(*req.UserID)
		}

		product.SetQuantity(newQty)
		if product.IsLowStock() {
			entry.AddDomainEvent(stock.NewStockBelowThresholdEvent(
				siteID, product.ID, product.CUG, product.Quantity, product.AlertThreshold))
		}

		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		return repos.LedgerRepo().Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, entry)
	return &AdjustmentResponse{
		Transaction: ToTransactionResponse(entry),
		OldQuantity: oldQty,
		NewQuantity: newQty,
		Delta:       entry.Quantity,
	}, nil
}

// GetByID retrieves one ledger entry, scoped to the site
func (s *StockService) GetByID(ctx context.Context, siteID, transactionID uuid.UUID) (*TransactionResponse, error) {
	entry, err := s.ledgerRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if entry.SiteID != siteID {
		return nil, shared.ErrNotFound
	}
	resp := ToTransactionResponse(entry)
	return &resp, nil
}

// List retrieves a filtered ledger page for a site
func (s *StockService) List(ctx context.Context, siteID uuid.UUID, filter TransactionListFilter) (shared.Paginated[TransactionResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	var page shared.Paginated[*stock.Transaction]
	var err error
	if filter.ProductID != nil {
		page, err = s.ledgerRepo.FindByProduct(ctx, siteID, *filter.ProductID, domainFilter)
	} else {
		page, err = s.ledgerRepo.FindAllForSite(ctx, siteID, domainFilter)
	}
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}

	items := make([]TransactionResponse, 0, len(page.Items))
	for _, tx := range page.Items {
		items = append(items, ToTransactionResponse(tx))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// ReconstructQuantity sums the signed ledger for a product
func (s *StockService) ReconstructQuantity(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	return s.ledgerRepo.SumQuantityForProduct(ctx, productID)
}

func (s *StockService) publishDomainEvents(ctx context.Context, entry *stock.Transaction) {
	if s.eventPublisher == nil || entry == nil {
		return
	}
	events := entry.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	entry.ClearDomainEvents()
}
