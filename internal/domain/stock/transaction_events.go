package stock

import (
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the stock ledger
const (
	EventTypeTransactionRecorded = "stock.transaction_recorded"
	EventTypeStockBelowThreshold = "stock.below_threshold"
)

// TransactionRecordedEvent is published for every ledger entry
type TransactionRecordedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Type      TransactionType `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// NewTransactionRecordedEvent creates a new TransactionRecordedEvent
func NewTransactionRecordedEvent(t *Transaction) *TransactionRecordedEvent {
	return &TransactionRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionRecorded, "StockTransaction", t.ID, t.SiteID),
		ProductID:       t.ProductID,
		Type:            t.Type,
		Quantity:        t.Quantity,
	}
}

// StockBelowThresholdEvent is published when a mutation leaves a
// product at or under its alert threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	CUG       string          `json:"cug"`
	Quantity  decimal.Decimal `json:"quantity"`
	Threshold decimal.Decimal `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(siteID, productID uuid.UUID, cug string, qty, threshold decimal.Decimal) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "Product", productID, siteID),
		ProductID:       productID,
		CUG:             cug,
		Quantity:        qty,
		Threshold:       threshold,
	}
}
