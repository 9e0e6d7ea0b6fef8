package subscription

import (
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status is the lifecycle state of a subscription
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Subscription ties a site to a paid plan for a period. Only a paid
// subscription inside its period counts toward quota resolution; a
// lapsed one silently falls back to the site's assigned plan or the
// free tier.
type Subscription struct {
	shared.SiteAggregateRoot
	PlanID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanCode string    `gorm:"type:varchar(30);not null"`
	Status   Status    `gorm:"type:varchar(10);not null;default:'pending';index"`
	StartsAt time.Time `gorm:"not null"`
	EndsAt   time.Time `gorm:"not null;index"`
	PaidAt   *time.Time
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription opens a pending subscription for a period
func NewSubscription(siteID uuid.UUID, plan *Plan, startsAt, endsAt time.Time) (*Subscription, error) {
	if plan == nil || !plan.IsActive {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan is not available for subscription")
	}
	if !endsAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Subscription end must be after its start")
	}
	return &Subscription{
		SiteAggregateRoot: shared.NewSiteAggregateRoot(siteID),
		PlanID:            plan.ID,
		PlanCode:          plan.Code,
		Status:            StatusPending,
		StartsAt:          startsAt,
		EndsAt:            endsAt,
	}, nil
}

// MarkPaid activates the subscription
func (s *Subscription) MarkPaid(at time.Time) error {
	if s.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled subscription cannot be paid")
	}
	s.PaidAt = &at
	s.Status = StatusActive
	s.touch()
	return nil
}

// Cancel stops the subscription. No refund logic is applied.
func (s *Subscription) Cancel() error {
	if s.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Subscription is already cancelled")
	}
	s.Status = StatusCancelled
	s.touch()
	return nil
}

// Expire marks a lapsed subscription, done lazily at read time
func (s *Subscription) Expire() {
	if s.Status == StatusActive {
		s.Status = StatusExpired
		s.touch()
	}
}

// IsCurrentlyActive reports whether the subscription is paid and the
// given instant falls inside its period
func (s *Subscription) IsCurrentlyActive(now time.Time) bool {
	if s.Status != StatusActive || s.PaidAt == nil {
		return false
	}
	return !now.Before(s.StartsAt) && now.Before(s.EndsAt)
}

func (s *Subscription) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
