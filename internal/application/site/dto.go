package site

import (
	"time"

	"github.com/bolibana/backend/internal/domain/site"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSiteRequest carries the data to create a site
type CreateSiteRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Address     string `json:"address" binding:"omitempty,max=255"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// UpdateSiteRequest carries updatable site fields. Nil means unchanged.
type UpdateSiteRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,max=500"`
}

// UpdateConfigRequest carries the business configuration of a site
type UpdateConfigRequest struct {
	Currency string          `json:"currency" binding:"required,len=3"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
}

// AssignPlanRequest assigns a plan code directly to a site.
// An empty code clears the assignment.
type AssignPlanRequest struct {
	PlanCode string `json:"plan_code" binding:"omitempty,max=50"`
}

// SiteListFilter holds listing parameters
type SiteListFilter struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
	OrderDir string
}

// SiteResponse is the outward representation of a site
type SiteResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Currency    string          `json:"currency"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	LogoURL     string          `json:"logo_url"`
	Status      string          `json:"status"`
	PlanCode    *string         `json:"plan_code,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toSiteResponse(s *site.Site) *SiteResponse {
	return &SiteResponse{
		ID:          s.ID,
		Name:        s.Name,
		Currency:    string(s.Currency),
		TaxRate:     s.TaxRate,
		Description: s.Branding.Description,
		Address:     s.Branding.Address,
		Phone:       s.Branding.Phone,
		Email:       s.Branding.Email,
		LogoURL:     s.Branding.LogoURL,
		Status:      string(s.Status),
		PlanCode:    s.PlanCode,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
