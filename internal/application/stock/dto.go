package stock

import (
	"time"

	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest represents a request to record a discrete
// stock movement
type RecordTransactionRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Type      string           `json:"type" binding:"required,oneof=in out loss backorder"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Notes     string           `json:"notes" binding:"max=500"`
	UserID    *uuid.UUID       `json:"-"`
}

// AdjustQuantityRequest represents a direct edit of a product's
// absolute quantity. Missing or unparsable input is treated as zero.
type AdjustQuantityRequest struct {
	ProductID   uuid.UUID  `json:"product_id" binding:"required"`
	NewQuantity string     `json:"new_quantity"`
	Notes       string     `json:"notes" binding:"max=500"`
	UserID      *uuid.UUID `json:"-"`
}

// TransactionListFilter represents filter options for ledger listings
type TransactionListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	Type      string     `form:"type" binding:"omitempty,oneof=in out loss adjustment backorder"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID              uuid.UUID             `json:"id"`
	SiteID          uuid.UUID             `json:"site_id"`
	ProductID       uuid.UUID             `json:"product_id"`
	Type            stock.TransactionType `json:"type"`
	Quantity        decimal.Decimal       `json:"quantity"`
	UnitPrice       decimal.Decimal       `json:"unit_price"`
	TotalValue      decimal.Decimal       `json:"total_value"`
	Notes           string                `json:"notes,omitempty"`
	UserID          *uuid.UUID            `json:"user_id,omitempty"`
	TransactionDate time.Time             `json:"transaction_date"`
}

// AdjustmentResponse reports the outcome of a quantity reconciliation
type AdjustmentResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	OldQuantity decimal.Decimal     `json:"old_quantity"`
	NewQuantity decimal.Decimal     `json:"new_quantity"`
	Delta       decimal.Decimal     `json:"delta"`
}

// ToTransactionResponse converts a domain Transaction to TransactionResponse
func ToTransactionResponse(t *stock.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		SiteID:          t.SiteID,
		ProductID:       t.ProductID,
		Type:            t.Type,
		Quantity:        t.Quantity,
		UnitPrice:       t.UnitPrice,
		TotalValue:      t.TotalValue(),
		Notes:           t.Notes,
		UserID:          t.UserID,
		TransactionDate: t.TransactionDate,
	}
}
