package sales

import (
	"context"
	"fmt"

	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// SaleService handles POS tickets. Completing a sale writes one
// outbound ledger entry per line and lowers the product quantities in
// the same database transaction.
type SaleService struct {
	scope          TransactionScope
	saleRepo       sales.SaleRepository
	eventPublisher shared.EventPublisher
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope, saleRepo sales.SaleRepository) *SaleService {
	return &SaleService{scope: scope, saleRepo: saleRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a pending sale
func (s *SaleService) Create(ctx context.Context, siteID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	sale, err := sales.NewSale(siteID, sales.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}
	sale.SetCustomerName(req.CustomerName)
	if req.CashierID != nil {
		sale.SetCashier(*req.CashierID)
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetByID retrieves a sale scoped to the site
func (s *SaleService) GetByID(ctx context.Context, siteID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForSite(ctx, saleID, siteID)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// List retrieves the site's sales
func (s *SaleService) List(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[SaleResponse], error) {
	page, err := s.saleRepo.FindAllForSite(ctx, siteID, filter)
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}
	items := make([]SaleResponse, 0, len(page.Items))
	for _, sale := range page.Items {
		items = append(items, ToSaleResponse(sale))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// AddItem adds a ticket line, snapshotting the product's name, CUG and
// selling price
func (s *SaleService) AddItem(ctx context.Context, siteID, saleID uuid.UUID, req SaleItemRequest) (*SaleResponse, error) {
	var sale *sales.Sale

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForSite(ctx, saleID, siteID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByIDForSite(ctx, req.ProductID, siteID)
		if err != nil {
			return err
		}

		unitPrice := product.SellingPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		if err := sale.AddItem(product.ID, product.Name, product.CUG, req.Quantity, unitPrice); err != nil {
			return err
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// UpdateItem changes a ticket line quantity
func (s *SaleService) UpdateItem(ctx context.Context, siteID, saleID, itemID uuid.UUID, req UpdateSaleItemRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForSite(ctx, saleID, siteID)
	if err != nil {
		return nil, err
	}
	if err := sale.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// RemoveItem deletes a ticket line
func (s *SaleService) RemoveItem(ctx context.Context, siteID, saleID, itemID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForSite(ctx, saleID, siteID)
	if err != nil {
		return nil, err
	}
	if err := sale.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Complete closes the ticket and records the stock removals. Negative
// stock is allowed; a sale never fails for lack of inventory.
func (s *SaleService) Complete(ctx context.Context, siteID, saleID uuid.UUID, userID *uuid.UUID) (*SaleResponse, error) {
	var sale *sales.Sale

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForSite(ctx, saleID, siteID)
		if err != nil {
			return err
		}
		if err := sale.Complete(); err != nil {
			return err
		}

		for _, item := range sale.Items {
			product, err := repos.ProductRepo().FindByIDForSite(ctx, item.ProductID, siteID)
			if err != nil {
				return err
			}
			entry, err := stock.NewOutbound(siteID, product.ID, item.Quantity, item.UnitPrice,
				fmt.Sprintf("sale %s", sale.Reference))
			if err != nil {
				return err
			}
			if userID != nil {
				entry.SetUser(*userID)
			}
			product.ApplyQuantityDelta(entry.Quantity)
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
			if err := repos.LedgerRepo().Save(ctx, entry); err != nil {
				return err
			}
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, sale)
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Cancel aborts a pending sale
func (s *SaleService) Cancel(ctx context.Context, siteID, saleID uuid.UUID) error {
	sale, err := s.saleRepo.FindByIDForSite(ctx, saleID, siteID)
	if err != nil {
		return err
	}
	if err := sale.Cancel(); err != nil {
		return err
	}
	return s.saleRepo.Save(ctx, sale)
}

func (s *SaleService) publishDomainEvents(ctx context.Context, sale *sales.Sale) {
	if s.eventPublisher == nil || sale == nil {
		return
	}
	events := sale.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	sale.ClearDomainEvents()
}
