package stock

import (
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TypeIn         TransactionType = "in"
	TypeOut        TransactionType = "out"
	TypeLoss       TransactionType = "loss"
	TypeAdjustment TransactionType = "adjustment"
	TypeBackorder  TransactionType = "backorder"
)

// IsValid reports whether the type is one of the known kinds
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeIn, TypeOut, TypeLoss, TypeAdjustment, TypeBackorder:
		return true
	}
	return false
}

// Transaction is an immutable stock ledger entry. Quantity stores the
// SIGNED effect on product stock: receipts are positive, removals are
// negative, adjustments store new minus old. Summing Quantity over a
// product's ledger therefore reconstructs its stock history, including
// direct quantity edits.
type Transaction struct {
	shared.SiteAggregateRoot
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            TransactionType `gorm:"type:varchar(20);not null;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes           string          `gorm:"type:varchar(500)"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index"`
	TransactionDate time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "stock_transactions"
}

// NewInbound records a stock receipt. Magnitude must be positive.
func NewInbound(siteID, productID uuid.UUID, qty, unitPrice decimal.Decimal, notes string) (*Transaction, error) {
	return newEntry(siteID, productID, TypeIn, qty, qty, unitPrice, notes)
}

// NewOutbound records a removal (sale or manual issue). The ledger
// stores the negated magnitude. No insufficiency check is applied,
// stock may go negative.
func NewOutbound(siteID, productID uuid.UUID, qty, unitPrice decimal.Decimal, notes string) (*Transaction, error) {
	return newEntry(siteID, productID, TypeOut, qty, qty.Neg(), unitPrice, notes)
}

// NewLoss records breakage, theft or expiry
func NewLoss(siteID, productID uuid.UUID, qty, unitPrice decimal.Decimal, notes string) (*Transaction, error) {
	return newEntry(siteID, productID, TypeLoss, qty, qty.Neg(), unitPrice, notes)
}

// NewBackorder records a committed sale without stock on hand
func NewBackorder(siteID, productID uuid.UUID, qty, unitPrice decimal.Decimal, notes string) (*Transaction, error) {
	return newEntry(siteID, productID, TypeBackorder, qty, qty.Neg(), unitPrice, notes)
}

// NewAdjustment reconciles a direct quantity edit. The entry stores the
// signed delta between the new and old absolute quantities, which may
// be zero when the edit confirms the current count.
func NewAdjustment(siteID, productID uuid.UUID, oldQty, newQty, unitPrice decimal.Decimal, notes string) *Transaction {
	delta := newQty.Round(3).Sub(oldQty.Round(3))
	tx := build(siteID, productID, TypeAdjustment, delta, unitPrice, notes)
	return tx
}

func newEntry(siteID, productID uuid.UUID, kind TransactionType, magnitude, signed, unitPrice decimal.Decimal, notes string) (*Transaction, error) {
	if magnitude.IsNegative() || magnitude.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Transaction quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return build(siteID, productID, kind, signed, unitPrice, notes), nil
}

func build(siteID, productID uuid.UUID, kind TransactionType, signed, unitPrice decimal.Decimal, notes string) *Transaction {
	tx := &Transaction{
		SiteAggregateRoot: shared.NewSiteAggregateRoot(siteID),
		ProductID:         productID,
		Type:              kind,
		Quantity:          signed.Round(3),
		UnitPrice:         unitPrice.Round(2),
		Notes:             strings.TrimSpace(notes),
		TransactionDate:   time.Now(),
	}
	tx.AddDomainEvent(NewTransactionRecordedEvent(tx))
	return tx
}

// SetUser attributes the entry to the acting user
func (t *Transaction) SetUser(userID uuid.UUID) {
	t.UserID = &userID
}

// TotalValue returns the absolute quantity times unit price
func (t *Transaction) TotalValue() decimal.Decimal {
	return t.Quantity.Abs().Mul(t.UnitPrice).Round(2)
}
