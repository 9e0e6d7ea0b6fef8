package site

import (
	"github.com/bolibana/backend/internal/domain/shared"
)

// Event types for site aggregates
const (
	EventTypeSiteCreated       = "site.created"
	EventTypeSiteConfigUpdated = "site.config_updated"
)

// SiteCreatedEvent is published when a new site is registered
type SiteCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSiteCreatedEvent creates a new SiteCreatedEvent
func NewSiteCreatedEvent(s *Site) *SiteCreatedEvent {
	return &SiteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSiteCreated, "Site", s.ID, s.ID),
		Name:            s.Name,
	}
}

// SiteConfigUpdatedEvent is published when currency or tax settings change
type SiteConfigUpdatedEvent struct {
	shared.BaseDomainEvent
	Currency string `json:"currency"`
	TaxRate  string `json:"tax_rate"`
}

// NewSiteConfigUpdatedEvent creates a new SiteConfigUpdatedEvent
func NewSiteConfigUpdatedEvent(s *Site) *SiteConfigUpdatedEvent {
	return &SiteConfigUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSiteConfigUpdated, "Site", s.ID, s.ID),
		Currency:        string(s.Currency),
		TaxRate:         s.TaxRate.String(),
	}
}
