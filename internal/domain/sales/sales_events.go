package sales

import (
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for sales aggregates
const (
	EventTypeSaleCompleted  = "sales.sale_completed"
	EventTypeOrderDelivered = "sales.order_delivered"
)

// SaleCompletedEvent is published when a ticket is closed
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	Reference     string          `json:"reference"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(s *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, "Sale", s.ID, s.SiteID),
		Reference:       s.Reference,
		Total:           s.Total,
		PaymentMethod:   s.PaymentMethod,
		ItemCount:       len(s.Items),
	}
}

// OrderDeliveredEvent is published when an order reaches delivered state
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	Reference string          `json:"reference"`
	Type      OrderType       `json:"type"`
	Total     decimal.Decimal `json:"total"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(o *Order) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, "Order", o.ID, o.SiteID),
		Reference:       o.Reference,
		Type:            o.Type,
		Total:           o.Total,
	}
}
