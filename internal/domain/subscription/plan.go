package subscription

import (
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnlimitedProducts marks a plan without a product cap
const UnlimitedProducts = -1

// Plan is a platform-wide subscription tier. MaxProducts of -1 means
// unlimited.
type Plan struct {
	shared.BaseAggregateRoot
	Code         string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(100);not null"`
	Description  string          `gorm:"type:varchar(500)"`
	MaxProducts  int             `gorm:"not null;default:-1"`
	MonthlyPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Plan) TableName() string {
	return "subscription_plans"
}

// NewPlan creates a plan
func NewPlan(code, name string, maxProducts int, monthlyPrice decimal.Decimal) (*Plan, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if code == "" || len(code) > 30 {
		return nil, shared.NewDomainError("INVALID_CODE", "Plan code must be 1-30 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if maxProducts < UnlimitedProducts || maxProducts == 0 {
		return nil, shared.NewDomainError("INVALID_LIMIT", "Product limit must be positive or -1 for unlimited")
	}
	if monthlyPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Monthly price cannot be negative")
	}
	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		MaxProducts:       maxProducts,
		MonthlyPrice:      monthlyPrice.Round(2),
		IsActive:          true,
	}, nil
}

// IsUnlimited reports whether the plan caps product count
func (p *Plan) IsUnlimited() bool {
	return p.MaxProducts == UnlimitedProducts
}

// Allows reports whether a catalog of the given size may grow by one
func (p *Plan) Allows(currentCount int64) bool {
	if p.IsUnlimited() {
		return true
	}
	return currentCount < int64(p.MaxProducts)
}

// SetLimit changes the product cap
func (p *Plan) SetLimit(maxProducts int) error {
	if maxProducts < UnlimitedProducts || maxProducts == 0 {
		return shared.NewDomainError("INVALID_LIMIT", "Product limit must be positive or -1 for unlimited")
	}
	p.MaxProducts = maxProducts
	p.touch()
	return nil
}

// Retire hides the plan from new subscriptions
func (p *Plan) Retire() {
	p.IsActive = false
	p.touch()
}

func (p *Plan) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
