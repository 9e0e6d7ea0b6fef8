package subscription

import (
	"time"

	"github.com/bolibana/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest represents a request to create a plan
type CreatePlanRequest struct {
	Code         string          `json:"code" binding:"required,min=1,max=30"`
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	Description  string          `json:"description" binding:"max=500"`
	MaxProducts  int             `json:"max_products" binding:"required"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
}

// UpdatePlanRequest represents a request to update a plan
type UpdatePlanRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	MaxProducts  *int             `json:"max_products"`
	MonthlyPrice *decimal.Decimal `json:"monthly_price"`
}

// PlanResponse represents a plan in API responses
type PlanResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	MaxProducts  int             `json:"max_products"`
	Unlimited    bool            `json:"unlimited"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SubscribeRequest represents a request to open a subscription
type SubscribeRequest struct {
	PlanCode string    `json:"plan_code" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID       uuid.UUID           `json:"id"`
	SiteID   uuid.UUID           `json:"site_id"`
	PlanCode string              `json:"plan_code"`
	Status   subscription.Status `json:"status"`
	StartsAt time.Time           `json:"starts_at"`
	EndsAt   time.Time           `json:"ends_at"`
	PaidAt   *time.Time          `json:"paid_at,omitempty"`
}

// EffectivePlan describes the quota actually applied to a site after
// resolution through subscription, site assignment and free fallback
type EffectivePlan struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	MaxProducts int    `json:"max_products"`
	Unlimited   bool   `json:"unlimited"`
	// Source is subscription, site or free
	Source string `json:"source"`
}

// QuotaStatusResponse reports catalog usage against the effective plan
type QuotaStatusResponse struct {
	Plan         EffectivePlan `json:"plan"`
	ProductCount int64         `json:"product_count"`
	ExcessCount  int           `json:"excess_count"`
	CanCreate    bool          `json:"can_create"`
}

// ToPlanResponse converts a domain Plan to PlanResponse
func ToPlanResponse(p *subscription.Plan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		MaxProducts:  p.MaxProducts,
		Unlimited:    p.IsUnlimited(),
		MonthlyPrice: p.MonthlyPrice,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// ToSubscriptionResponse converts a domain Subscription to SubscriptionResponse
func ToSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:       s.ID,
		SiteID:   s.SiteID,
		PlanCode: s.PlanCode,
		Status:   s.Status,
		StartsAt: s.StartsAt,
		EndsAt:   s.EndsAt,
		PaidAt:   s.PaidAt,
	}
}
