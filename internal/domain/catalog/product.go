package catalog

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var cugRegex = regexp.MustCompile(`^[0-9]{5}$`)

// Product is the central catalog aggregate. Each product belongs to one
// site, carries a 5-digit CUG code unique across the installation, and
// owns zero or more Barcode children with at most one marked primary.
// Quantity is a signed decimal with 3 fraction digits so weight-sold
// goods (kg, g) coexist with counted units; negative values are allowed
// to represent backorders.
type Product struct {
	shared.SiteAggregateRoot
	CUG            string          `gorm:"type:varchar(5);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null;index"`
	Description    string          `gorm:"type:text"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unit           string          `gorm:"type:varchar(20);not null;default:'piece'"`
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AlertThreshold decimal.Decimal `gorm:"type:decimal(12,3);not null;default:5"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	BrandID        *uuid.UUID      `gorm:"type:uuid;index"`
	LegacyBarcode  string          `gorm:"type:varchar(50);index"`
	IsActive       bool            `gorm:"not null;default:true"`
	Barcodes       []Barcode       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product with the given CUG.
// Callers generate the CUG and retry on collision before constructing.
func NewProduct(siteID uuid.UUID, cug, name string, purchasePrice, sellingPrice decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if !cugRegex.MatchString(cug) {
		return nil, shared.NewDomainError("INVALID_CUG", "CUG must be exactly 5 digits")
	}
	if purchasePrice.IsNegative() || sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	p := &Product{
		SiteAggregateRoot: shared.NewSiteAggregateRoot(siteID),
		CUG:               cug,
		Name:              name,
		Quantity:          decimal.Zero,
		Unit:              "piece",
		PurchasePrice:     purchasePrice.Round(2),
		SellingPrice:      sellingPrice.Round(2),
		AlertThreshold:    decimal.NewFromInt(5),
		IsActive:          true,
	}
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

// RandomCUG generates a candidate 5-digit code. Uniqueness is checked
// against the repository by the caller, retrying on collision.
func RandomCUG() string {
	return fmt.Sprintf("%05d", rand.IntN(100000))
}

// UpdateDetails updates name and description
func (p *Product) UpdateDetails(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	p.Name = name
	p.Description = strings.TrimSpace(description)
	p.touch()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// SetPrices updates purchase and selling price
func (p *Product) SetPrices(purchasePrice, sellingPrice decimal.Decimal) error {
	if purchasePrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.PurchasePrice = purchasePrice.Round(2)
	p.SellingPrice = sellingPrice.Round(2)
	p.touch()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// Margin returns selling price minus purchase price
func (p *Product) Margin() decimal.Decimal {
	return p.SellingPrice.Sub(p.PurchasePrice)
}

// SetUnit changes the unit of measure
func (p *Product) SetUnit(unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" || len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit must be 1-20 characters")
	}
	p.Unit = unit
	p.touch()
	return nil
}

// SetCategory assigns the product to a category, nil clears it
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.touch()
}

// SetBrand assigns the product to a brand, nil clears it
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.touch()
}

// SetAlertThreshold sets the low-stock alert level
func (p *Product) SetAlertThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Alert threshold cannot be negative")
	}
	p.AlertThreshold = threshold.Round(3)
	p.touch()
	return nil
}

// IsLowStock reports whether quantity is at or below the alert threshold
func (p *Product) IsLowStock() bool {
	return p.Quantity.LessThanOrEqual(p.AlertThreshold)
}

// ApplyQuantityDelta adds a signed quantity change. Negative results are
// permitted; backordered stock is represented as quantity below zero.
func (p *Product) ApplyQuantityDelta(delta decimal.Decimal) {
	p.Quantity = p.Quantity.Add(delta).Round(3)
	p.touch()
}

// SetQuantity replaces the absolute quantity and returns the signed
// delta relative to the previous value, for ledger reconciliation.
func (p *Product) SetQuantity(newQuantity decimal.Decimal) decimal.Decimal {
	newQuantity = newQuantity.Round(3)
	delta := newQuantity.Sub(p.Quantity)
	p.Quantity = newQuantity
	p.touch()
	return delta
}

// SetLegacyBarcode sets the inline barcode field kept for records
// imported before the barcode table existed. Uniqueness against the
// barcode table is checked by the application service.
func (p *Product) SetLegacyBarcode(code string) error {
	code = strings.TrimSpace(code)
	if code != "" && !isDigits(code) {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode must be numeric")
	}
	p.LegacyBarcode = code
	p.touch()
	return nil
}

// AddBarcode attaches a new barcode to the product. The first barcode
// added becomes primary automatically.
func (p *Product) AddBarcode(ean, notes string) (*Barcode, error) {
	ean = strings.TrimSpace(ean)
	if err := validateEAN(ean); err != nil {
		return nil, err
	}
	for _, b := range p.Barcodes {
		if b.EAN == ean {
			return nil, shared.ErrDuplicateBarcode
		}
	}

	barcode := newBarcode(p.ID, ean, notes)
	if len(p.Barcodes) == 0 {
		barcode.IsPrimary = true
	}
	p.Barcodes = append(p.Barcodes, *barcode)
	p.touch()
	p.AddDomainEvent(NewBarcodeAddedEvent(p, ean))
	return &p.Barcodes[len(p.Barcodes)-1], nil
}

// RemoveBarcode detaches a barcode. If the primary barcode is removed
// the first remaining one is promoted.
func (p *Product) RemoveBarcode(barcodeID uuid.UUID) error {
	idx := -1
	for i, b := range p.Barcodes {
		if b.ID == barcodeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrNotFound
	}
	wasPrimary := p.Barcodes[idx].IsPrimary
	p.Barcodes = append(p.Barcodes[:idx], p.Barcodes[idx+1:]...)
	if wasPrimary && len(p.Barcodes) > 0 {
		p.Barcodes[0].IsPrimary = true
	}
	p.touch()
	return nil
}

// SetPrimaryBarcode marks one barcode primary and clears the flag on
// all others. Last set wins.
func (p *Product) SetPrimaryBarcode(barcodeID uuid.UUID) error {
	found := false
	for i := range p.Barcodes {
		if p.Barcodes[i].ID == barcodeID {
			p.Barcodes[i].IsPrimary = true
			found = true
		} else {
			p.Barcodes[i].IsPrimary = false
		}
	}
	if !found {
		return shared.ErrNotFound
	}
	p.touch()
	return nil
}

// PrimaryBarcode returns the primary barcode or nil
func (p *Product) PrimaryBarcode() *Barcode {
	for i := range p.Barcodes {
		if p.Barcodes[i].IsPrimary {
			return &p.Barcodes[i]
		}
	}
	return nil
}

// Activate marks the product sellable
func (p *Product) Activate() {
	p.IsActive = true
	p.touch()
}

// Deactivate hides the product from default listings
func (p *Product) Deactivate() {
	p.IsActive = false
	p.touch()
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateEAN(ean string) error {
	if len(ean) < 8 || len(ean) > 13 || !isDigits(ean) {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode must be 8-13 digits")
	}
	return nil
}
