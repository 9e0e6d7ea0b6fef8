package sales

import (
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was settled
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "mobile_money"
	PaymentCard        PaymentMethod = "card"
	PaymentCredit      PaymentMethod = "credit"
)

// IsValid reports whether the payment method is known
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentMobileMoney, PaymentCard, PaymentCredit:
		return true
	}
	return false
}

// SaleStatus is the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// Sale is a point-of-sale ticket. Totals derive from line items.
// Completing a sale is what triggers the stock removals, recorded by
// the application layer in the same database transaction.
type Sale struct {
	shared.SiteAggregateRoot
	Reference     string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Status        SaleStatus      `gorm:"type:varchar(10);not null;default:'pending';index"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(15);not null;default:'cash'"`
	CustomerName  string          `gorm:"type:varchar(200)"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CashierID     *uuid.UUID      `gorm:"type:uuid;index"`
	CompletedAt   *time.Time
	Items         []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is a ticket line with a snapshot of the product at sale time
type SaleItem struct {
	shared.BaseEntity
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	CUG         string          `gorm:"type:varchar(5);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSale opens a pending sale
func NewSale(siteID uuid.UUID, payment PaymentMethod) (*Sale, error) {
	if !payment.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	return &Sale{
		SiteAggregateRoot: shared.NewSiteAggregateRoot(siteID),
		Reference:         newReference("SALE"),
		Status:            SaleStatusPending,
		PaymentMethod:     payment,
		Total:             decimal.Zero,
	}, nil
}

// AddItem adds a ticket line. Adding the same product again merges
// into the existing line.
func (s *Sale) AddItem(productID uuid.UUID, productName, cug string, qty, unitPrice decimal.Decimal) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if qty.IsNegative() || qty.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	qty = qty.Round(3)
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items[i].Quantity = s.Items[i].Quantity.Add(qty)
			s.Items[i].LineTotal = s.Items[i].Quantity.Mul(s.Items[i].UnitPrice).Round(2)
			s.recomputeTotal()
			return nil
		}
	}

	unitPrice = unitPrice.Round(2)
	s.Items = append(s.Items, SaleItem{
		BaseEntity:  shared.NewBaseEntity(),
		SaleID:      s.ID,
		ProductID:   productID,
		ProductName: strings.TrimSpace(productName),
		CUG:         cug,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		LineTotal:   qty.Mul(unitPrice).Round(2),
	})
	s.recomputeTotal()
	return nil
}

// UpdateItemQuantity changes a ticket line quantity and recomputes totals
func (s *Sale) UpdateItemQuantity(itemID uuid.UUID, qty decimal.Decimal) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if qty.IsNegative() || qty.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			s.Items[i].Quantity = qty.Round(3)
			s.Items[i].LineTotal = s.Items[i].Quantity.Mul(s.Items[i].UnitPrice).Round(2)
			s.recomputeTotal()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem deletes a ticket line
func (s *Sale) RemoveItem(itemID uuid.UUID) error {
	if err := s.mutable(); err != nil {
		return err
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			s.recomputeTotal()
			return nil
		}
	}
	return shared.ErrNotFound
}

// SetCashier attributes the sale to a user
func (s *Sale) SetCashier(userID uuid.UUID) {
	s.CashierID = &userID
	s.touch()
}

// SetCustomerName records an optional customer name
func (s *Sale) SetCustomerName(name string) {
	s.CustomerName = strings.TrimSpace(name)
	s.touch()
}

// Complete closes the ticket. The caller records one outbound stock
// transaction per line in the same database transaction.
func (s *Sale) Complete() error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending sales can be completed")
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("EMPTY_SALE", "Cannot complete a sale without items")
	}
	now := time.Now()
	s.Status = SaleStatusCompleted
	s.CompletedAt = &now
	s.touch()
	s.AddDomainEvent(NewSaleCompletedEvent(s))
	return nil
}

// Cancel aborts a pending sale
func (s *Sale) Cancel() error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending sales can be cancelled")
	}
	s.Status = SaleStatusCancelled
	s.touch()
	return nil
}

func (s *Sale) mutable() error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending sales can be modified")
	}
	return nil
}

func (s *Sale) recomputeTotal() {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].LineTotal)
	}
	s.Total = total.Round(2)
	s.touch()
}

func (s *Sale) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
