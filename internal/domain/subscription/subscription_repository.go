package subscription

import (
	"context"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PlanRepository defines persistence for plans
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	FindByCode(ctx context.Context, code string) (*Plan, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Plan], error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository defines persistence for subscriptions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Subscription], error)
	// FindActiveForSite returns the paid subscription whose period
	// covers the given instant, or shared.ErrNotFound.
	FindActiveForSite(ctx context.Context, siteID uuid.UUID, now time.Time) (*Subscription, error)
	Save(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
}
