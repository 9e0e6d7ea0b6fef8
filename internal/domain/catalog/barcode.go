package catalog

import (
	"strings"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Barcode is a child entity of Product. The EAN is unique across the
// whole installation, all sites included, so a scan resolves to exactly
// one product.
type Barcode struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	EAN       string    `gorm:"type:varchar(13);not null;uniqueIndex"`
	IsPrimary bool      `gorm:"not null;default:false"`
	Notes     string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Barcode) TableName() string {
	return "barcodes"
}

func newBarcode(productID uuid.UUID, ean, notes string) *Barcode {
	return &Barcode{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		EAN:        ean,
		Notes:      strings.TrimSpace(notes),
	}
}
