package sales

import (
	"time"

	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to open an order
type CreateOrderRequest struct {
	Type         string `json:"type" binding:"required,oneof=supplier customer"`
	Counterparty string `json:"counterparty" binding:"max=200"`
}

// UpdateOrderRequest represents a request to edit a draft order's header
type UpdateOrderRequest struct {
	Counterparty *string `json:"counterparty" binding:"omitempty,max=200"`
	Notes        *string `json:"notes" binding:"omitempty,max=500"`
}

// OrderItemRequest represents a line to add to an order
type OrderItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	SiteID       uuid.UUID           `json:"site_id"`
	Reference    string              `json:"reference"`
	Type         sales.OrderType     `json:"type"`
	Status       sales.OrderStatus   `json:"status"`
	Counterparty string              `json:"counterparty,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Total        decimal.Decimal     `json:"total"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CreateSaleRequest represents a request to open a POS ticket
type CreateSaleRequest struct {
	PaymentMethod string     `json:"payment_method" binding:"required,oneof=cash mobile_money card credit"`
	CustomerName  string     `json:"customer_name" binding:"max=200"`
	CashierID     *uuid.UUID `json:"-"`
}

// SaleItemRequest represents a line to add to a sale
type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// UpdateSaleItemRequest represents a request to change a ticket line quantity
type UpdateSaleItemRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// SaleItemResponse represents a ticket line in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	CUG         string          `json:"cug"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID           `json:"id"`
	SiteID        uuid.UUID           `json:"site_id"`
	Reference     string              `json:"reference"`
	Status        sales.SaleStatus    `json:"status"`
	PaymentMethod sales.PaymentMethod `json:"payment_method"`
	CustomerName  string              `json:"customer_name,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	CashierID     *uuid.UUID          `json:"cashier_id,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	Items         []SaleItemResponse  `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *sales.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return OrderResponse{
		ID:           o.ID,
		SiteID:       o.SiteID,
		Reference:    o.Reference,
		Type:         o.Type,
		Status:       o.Status,
		Counterparty: o.Counterparty,
		Notes:        o.Notes,
		Total:        o.Total,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			CUG:         it.CUG,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return SaleResponse{
		ID:            s.ID,
		SiteID:        s.SiteID,
		Reference:     s.Reference,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		CustomerName:  s.CustomerName,
		Total:         s.Total,
		CashierID:     s.CashierID,
		CompletedAt:   s.CompletedAt,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}
