package catalog

import (
	"time"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product.
// CUG is optional; when absent the service generates a unique one.
type CreateProductRequest struct {
	CUG            string           `json:"cug" binding:"omitempty,len=5,numeric"`
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Description    string           `json:"description" binding:"max=2000"`
	Unit           string           `json:"unit" binding:"omitempty,min=1,max=20"`
	Barcode        string           `json:"barcode" binding:"omitempty,numeric,max=13"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	BrandID        *uuid.UUID       `json:"brand_id"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	SellingPrice   *decimal.Decimal `json:"selling_price"`
	AlertThreshold *decimal.Decimal `json:"alert_threshold"`
	CreatedBy      *uuid.UUID       `json:"-"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=2000"`
	Unit           *string          `json:"unit" binding:"omitempty,min=1,max=20"`
	Barcode        *string          `json:"barcode" binding:"omitempty,max=13"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	BrandID        *uuid.UUID       `json:"brand_id"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	SellingPrice   *decimal.Decimal `json:"selling_price"`
	AlertThreshold *decimal.Decimal `json:"alert_threshold"`
	IsActive       *bool            `json:"is_active"`
}

// ProductListFilter represents filter options for product listings
type ProductListFilter struct {
	Search        string     `form:"search"`
	CategoryID    *uuid.UUID `form:"category_id"`
	BrandID       *uuid.UUID `form:"brand_id"`
	LowStock      bool       `form:"low_stock"`
	IncludeExcess bool       `form:"include_excess"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BarcodeResponse represents a barcode in API responses
type BarcodeResponse struct {
	ID        uuid.UUID `json:"id"`
	EAN       string    `json:"ean"`
	IsPrimary bool      `json:"is_primary"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID         `json:"id"`
	SiteID         uuid.UUID         `json:"site_id"`
	CUG            string            `json:"cug"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Quantity       decimal.Decimal   `json:"quantity"`
	Unit           string            `json:"unit"`
	PurchasePrice  decimal.Decimal   `json:"purchase_price"`
	SellingPrice   decimal.Decimal   `json:"selling_price"`
	Margin         decimal.Decimal   `json:"margin"`
	AlertThreshold decimal.Decimal   `json:"alert_threshold"`
	LowStock       bool              `json:"low_stock"`
	CategoryID     *uuid.UUID        `json:"category_id,omitempty"`
	BrandID        *uuid.UUID        `json:"brand_id,omitempty"`
	Barcode        string            `json:"barcode,omitempty"`
	Barcodes       []BarcodeResponse `json:"barcodes"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Version        int               `json:"version"`
}

// AddBarcodeRequest represents a request to attach a barcode
type AddBarcodeRequest struct {
	EAN   string `json:"ean" binding:"required,numeric,min=8,max=13"`
	Notes string `json:"notes" binding:"max=200"`
}

// GenerateBarcodeRequest represents a request to derive an EAN-13 from
// the product's CUG
type GenerateBarcodeRequest struct {
	Prefix string `json:"prefix" binding:"omitempty,numeric,max=9"`
}

// ScanResponse represents the result of a code scan
type ScanResponse struct {
	MatchedBy string          `json:"matched_by"`
	Product   ProductResponse `json:"product"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=500"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	SiteID      uuid.UUID  `json:"site_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateBrandRequest represents a request to update a brand
type UpdateBrandRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID          uuid.UUID `json:"id"`
	SiteID      uuid.UUID `json:"site_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	barcodes := make([]BarcodeResponse, 0, len(p.Barcodes))
	for _, b := range p.Barcodes {
		barcodes = append(barcodes, BarcodeResponse{
			ID:        b.ID,
			EAN:       b.EAN,
			IsPrimary: b.IsPrimary,
			Notes:     b.Notes,
			CreatedAt: b.CreatedAt,
		})
	}
	return ProductResponse{
		ID:             p.ID,
		SiteID:         p.SiteID,
		CUG:            p.CUG,
		Name:           p.Name,
		Description:    p.Description,
		Quantity:       p.Quantity,
		Unit:           p.Unit,
		PurchasePrice:  p.PurchasePrice,
		SellingPrice:   p.SellingPrice,
		Margin:         p.Margin(),
		AlertThreshold: p.AlertThreshold,
		LowStock:       p.IsLowStock(),
		CategoryID:     p.CategoryID,
		BrandID:        p.BrandID,
		Barcode:        p.LegacyBarcode,
		Barcodes:       barcodes,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		SiteID:      c.SiteID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
	}
}

// ToBrandResponse converts a domain Brand to BrandResponse
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		SiteID:      b.SiteID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}
