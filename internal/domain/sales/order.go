package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType distinguishes restocking orders from customer orders
type OrderType string

const (
	OrderTypeSupplier OrderType = "supplier"
	OrderTypeCustomer OrderType = "customer"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a supplier or customer order. The total is recomputed from
// line items on every mutation, never stored independently.
type Order struct {
	shared.SiteAggregateRoot
	Reference    string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Type         OrderType       `gorm:"type:varchar(10);not null"`
	Status       OrderStatus     `gorm:"type:varchar(10);not null;default:'draft';index"`
	Counterparty string          `gorm:"type:varchar(200)"`
	Notes        string          `gorm:"type:varchar(500)"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line on an order, carrying a price snapshot taken at
// the time the line was added
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a draft order
func NewOrder(siteID uuid.UUID, orderType OrderType, counterparty string) (*Order, error) {
	if orderType != OrderTypeSupplier && orderType != OrderTypeCustomer {
		return nil, shared.NewDomainError("INVALID_ORDER_TYPE", "Order type must be supplier or customer")
	}
	o := &Order{
		SiteAggregateRoot: shared.NewSiteAggregateRoot(siteID),
		Reference:         newReference("ORD"),
		Type:              orderType,
		Status:            OrderStatusDraft,
		Counterparty:      strings.TrimSpace(counterparty),
		Total:             decimal.Zero,
	}
	return o, nil
}

// AddItem adds a line and recomputes the total. Only draft orders
// accept changes.
func (o *Order) AddItem(productID uuid.UUID, productName string, qty, unitPrice decimal.Decimal) error {
	if err := o.mutable(); err != nil {
		return err
	}
	if qty.IsNegative() || qty.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return shared.NewDomainError("DUPLICATE_LINE", "Product is already on the order")
		}
	}

	qty = qty.Round(3)
	unitPrice = unitPrice.Round(2)
	o.Items = append(o.Items, OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: strings.TrimSpace(productName),
		Quantity:    qty,
		UnitPrice:   unitPrice,
		LineTotal:   qty.Mul(unitPrice).Round(2),
	})
	o.recomputeTotal()
	return nil
}

// UpdateDetails edits the order header. Only draft orders accept changes.
func (o *Order) UpdateDetails(counterparty, notes string) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.Counterparty = strings.TrimSpace(counterparty)
	o.Notes = strings.TrimSpace(notes)
	o.touch()
	return nil
}

// UpdateItemQuantity changes a line quantity and recomputes totals
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, qty decimal.Decimal) error {
	if err := o.mutable(); err != nil {
		return err
	}
	if qty.IsNegative() || qty.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].Quantity = qty.Round(3)
			o.Items[i].LineTotal = o.Items[i].Quantity.Mul(o.Items[i].UnitPrice).Round(2)
			o.recomputeTotal()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem deletes a line and recomputes the total
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if err := o.mutable(); err != nil {
		return err
	}
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.recomputeTotal()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Confirm locks the order for delivery
func (o *Order) Confirm() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be confirmed")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order without items")
	}
	o.Status = OrderStatusConfirmed
	o.touch()
	return nil
}

// MarkDelivered completes a confirmed order. Stock movements are
// recorded by the caller.
func (o *Order) MarkDelivered() error {
	if o.Status != OrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be delivered")
	}
	o.Status = OrderStatusDelivered
	o.touch()
	o.AddDomainEvent(NewOrderDeliveredEvent(o))
	return nil
}

// Cancel aborts a draft or confirmed order
func (o *Order) Cancel() error {
	if o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order can no longer be cancelled")
	}
	o.Status = OrderStatusCancelled
	o.touch()
	return nil
}

func (o *Order) mutable() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be modified")
	}
	return nil
}

func (o *Order) recomputeTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal)
	}
	o.Total = total.Round(2)
	o.touch()
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

func newReference(prefix string) string {
	ts := time.Now().Format("20060102")
	return fmt.Sprintf("%s-%s-%s", prefix, ts, strings.ToUpper(uuid.NewString()[:8]))
}
