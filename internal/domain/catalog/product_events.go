package catalog

import (
	"github.com/bolibana/backend/internal/domain/shared"
)

// Event types for catalog aggregates
const (
	EventTypeProductCreated = "catalog.product_created"
	EventTypeProductUpdated = "catalog.product_updated"
	EventTypeBarcodeAdded   = "catalog.barcode_added"
)

// ProductCreatedEvent is published when a product enters the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	CUG  string `json:"cug"`
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID, p.SiteID),
		CUG:             p.CUG,
		Name:            p.Name,
	}
}

// ProductUpdatedEvent is published when product details or prices change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	CUG  string `json:"cug"`
	Name string `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID, p.SiteID),
		CUG:             p.CUG,
		Name:            p.Name,
	}
}

// BarcodeAddedEvent is published when a barcode is attached to a product
type BarcodeAddedEvent struct {
	shared.BaseDomainEvent
	CUG string `json:"cug"`
	EAN string `json:"ean"`
}

// NewBarcodeAddedEvent creates a new BarcodeAddedEvent
func NewBarcodeAddedEvent(p *Product, ean string) *BarcodeAddedEvent {
	return &BarcodeAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBarcodeAdded, "Product", p.ID, p.SiteID),
		CUG:             p.CUG,
		EAN:             ean,
	}
}
