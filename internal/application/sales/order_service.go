package sales

import (
	"context"
	"fmt"

	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// OrderService handles supplier and customer orders. Delivering a
// supplier order records inbound ledger entries; a customer order
// records outbound ones.
type OrderService struct {
	scope          TransactionScope
	orderRepo      sales.OrderRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope, orderRepo sales.OrderRepository) *OrderService {
	return &OrderService{scope: scope, orderRepo: orderRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a draft order
func (s *OrderService) Create(ctx context.Context, siteID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	order, err := sales.NewOrder(siteID, sales.OrderType(req.Type), req.Counterparty)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves an order scoped to the site
func (s *OrderService) GetByID(ctx context.Context, siteID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForSite(ctx, orderID, siteID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List retrieves the site's orders
func (s *OrderService) List(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[OrderResponse], error) {
	page, err := s.orderRepo.FindAllForSite(ctx, siteID, filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	items := make([]OrderResponse, 0, len(page.Items))
	for _, order := range page.Items {
		items = append(items, ToOrderResponse(order))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Update edits a draft order's header fields
func (s *OrderService) Update(ctx context.Context, siteID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForSite(ctx, orderID, siteID)
	if err != nil {
		return nil, err
	}

	counterparty := order.Counterparty
	if req.Counterparty != nil {
		counterparty = *req.Counterparty
	}
	notes := order.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := order.UpdateDetails(counterparty, notes); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Delete removes a draft order. Confirmed and delivered orders keep
// their history and can only be cancelled.
func (s *OrderService) Delete(ctx context.Context, siteID, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByIDForSite(ctx, orderID, siteID)
	if err != nil {
		return err
	}
	if order.Status != sales.OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, order.ID)
}

// AddItem adds a line to a draft order. Supplier orders default to the
// purchase price, customer orders to the selling price.
func (s *OrderService) AddItem(ctx context.Context, siteID, orderID uuid.UUID, req OrderItemRequest) (*OrderResponse, error) {
	var order *sales.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForSite(ctx, orderID, siteID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByIDForSite(ctx, req.ProductID, siteID)
		if err != nil {
			return err
		}

		unitPrice := product.SellingPrice
		if order.Type == sales.OrderTypeSupplier {
			unitPrice = product.PurchasePrice
		}
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		if err := order.AddItem(product.ID, product.Name, req.Quantity, unitPrice); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// RemoveItem deletes a line from a draft order
func (s *OrderService) RemoveItem(ctx context.Context, siteID, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForSite(ctx, orderID, siteID)
	if err != nil {
		return nil, err
	}
	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Confirm locks a draft order for delivery
func (s *OrderService) Confirm(ctx context.Context, siteID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForSite(ctx, orderID, siteID)
	if err != nil {
		return nil, err
	}
	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Deliver completes a confirmed order and records the matching stock
// movements in one database transaction
func (s *OrderService) Deliver(ctx context.Context, siteID, orderID uuid.UUID, userID *uuid.UUID) (*OrderResponse, error) {
	var order *sales.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForSite(ctx, orderID, siteID)
		if err != nil {
			return err
		}
		if err := order.MarkDelivered(); err != nil {
			return err
		}

		for _, item := range order.Items {
			product, err := repos.ProductRepo().FindByIDForSite(ctx, item.ProductID, siteID)
			if err != nil {
				return err
			}

			notes := fmt.Sprintf("order %s", order.Reference)
			var entry *stock.Transaction
			if order.Type == sales.OrderTypeSupplier {
				entry, err = stock.NewInbound(siteID, product.ID, item.Quantity, item.UnitPrice, notes)
			} else {
				entry, err = stock.NewOutbound(siteID, product.ID, item.Quantity, item.UnitPrice, notes)
			}
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
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Cancel aborts a draft or confirmed order
func (s *OrderService) Cancel(ctx context.Context, siteID, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByIDForSite(ctx, orderID, siteID)
	if err != nil {
		return err
	}
	if err := order.Cancel(); err != nil {
		return err
	}
	return s.orderRepo.Save(ctx, order)
}

func (s *OrderService) publishDomainEvents(ctx context.Context, order *sales.Order) {
	if s.eventPublisher == nil || order == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}
