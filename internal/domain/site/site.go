package site

import (
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the status of a site
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Branding holds the presentational identity of a site
type Branding struct {
	Description string `gorm:"type:text"`
	Address     string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(30)"`
	Email       string `gorm:"type:varchar(254)"`
	LogoURL     string `gorm:"type:varchar(500)"`
}

// Site is the per-tenant business configuration.
// Exactly one Site exists per tenant; all business records carry its ID.
type Site struct {
	shared.BaseAggregateRoot
	Name     string               `gorm:"type:varchar(100);not null;uniqueIndex"`
	Currency valueobject.Currency `gorm:"type:varchar(3);not null;default:'XOF'"`
	TaxRate  decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"` // percent
	Branding Branding             `gorm:"embedded;embeddedPrefix:branding_"`
	Status   Status               `gorm:"type:varchar(20);not null;default:'active'"`
	// PlanCode is an optional plan assigned directly to the site.
	// It is the fallback when no active subscription exists.
	PlanCode *string `gorm:"type:varchar(50);index"`
}

// TableName returns the table name for GORM
func (Site) TableName() string {
	return "sites"
}

// NewSite creates a new site with the default currency
func NewSite(name string) (*Site, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	s := &Site{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Currency:          valueobject.DefaultCurrency,
		TaxRate:           decimal.Zero,
		Status:            StatusActive,
	}

	s.AddDomainEvent(NewSiteCreatedEvent(s))

	return s, nil
}

// Rename changes the site name
func (s *Site) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	s.Name = strings.TrimSpace(name)
	s.touch()
	return nil
}

// UpdateConfig updates the business configuration of the site
func (s *Site) UpdateConfig(currency valueobject.Currency, taxRate decimal.Decimal) error {
	if currency == "" {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100 percent")
	}
	s.Currency = currency
	s.TaxRate = taxRate
	s.touch()
	s.AddDomainEvent(NewSiteConfigUpdatedEvent(s))
	return nil
}

// UpdateBranding replaces the branding block
func (s *Site) UpdateBranding(b Branding) {
	s.Branding = b
	s.touch()
}

// AssignPlan assigns a plan code directly to the site.
// Used as fallback when no paid subscription is active.
func (s *Site) AssignPlan(planCode string) {
	if planCode == "" {
		s.PlanCode = nil
	} else {
		s.PlanCode = &planCode
	}
	s.touch()
}

// Activate reactivates a suspended site
func (s *Site) Activate() error {
	if s.Status == StatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Site is already active")
	}
	s.Status = StatusActive
	s.touch()
	return nil
}

// Suspend suspends the site (payment or policy issues)
func (s *Site) Suspend() error {
	if s.Status == StatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Site is already suspended")
	}
	s.Status = StatusSuspended
	s.touch()
	return nil
}

// IsActive returns true when the site may serve requests
func (s *Site) IsActive() bool {
	return s.Status == StatusActive
}

func (s *Site) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Site name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Site name cannot exceed 100 characters")
	}
	return nil
}
