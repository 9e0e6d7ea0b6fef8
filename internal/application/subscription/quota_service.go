package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/site"
	"github.com/bolibana/backend/internal/domain/subscription"
	"github.com/google/uuid"
)

// FreePlanCode labels the implicit fallback tier
const FreePlanCode = "free"

// QuotaService resolves the plan effectively limiting a site's catalog
// and decides which products are in excess of it.
//
// Resolution order: active paid subscription's plan, then the plan
// assigned directly on the site record, then an implicit free tier
// with no limit.
type QuotaService struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	siteRepo         site.Repository
	productRepo      catalog.ProductRepository
}

// NewQuotaService creates a new QuotaService
func NewQuotaService(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	siteRepo site.Repository,
	productRepo catalog.ProductRepository,
) *QuotaService {
	return &QuotaService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		siteRepo:         siteRepo,
		productRepo:      productRepo,
	}
}

// ResolveEffectivePlan returns the plan limiting the given site
func (s *QuotaService) ResolveEffectivePlan(ctx context.Context, siteID uuid.UUID) (*EffectivePlan, error) {
	sub, err := s.subscriptionRepo.FindActiveForSite(ctx, siteID, time.Now())
	if err == nil {
		plan, err := s.planRepo.FindByID(ctx, sub.PlanID)
		if err != nil {
			return nil, err
		}
		return effectivePlanFrom(plan, "subscription"), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	st, err := s.siteRepo.FindByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if st.PlanCode != nil {
		plan, err := s.planRepo.FindByCode(ctx, *st.PlanCode)
		if err == nil {
			return effectivePlanFrom(plan, "site"), nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		// Dangling plan code falls through to the free tier
	}

	return &EffectivePlan{
		Code:        FreePlanCode,
		Name:        "Free",
		MaxProducts: subscription.UnlimitedProducts,
		Unlimited:   true,
		Source:      "free",
	}, nil
}

// CheckProductQuota returns shared.ErrQuotaExceeded when the site's
// catalog has reached its effective limit
func (s *QuotaService) CheckProductQuota(ctx context.Context, siteID uuid.UUID) error {
	plan, err := s.ResolveEffectivePlan(ctx, siteID)
	if err != nil {
		return err
	}
	if plan.Unlimited {
		return nil
	}
	count, err := s.productRepo.CountForSite(ctx, siteID)
	if err != nil {
		return err
	}
	if count >= int64(plan.MaxProducts) {
		return shared.ErrQuotaExceeded
	}
	return nil
}

// ExcessProductIDs returns the products beyond the effective limit, in
// creation order. They stay in the database and keep their history but
// default listings and dashboard counts exclude them.
func (s *QuotaService) ExcessProductIDs(ctx context.Context, siteID uuid.UUID) ([]uuid.UUID, error) {
	plan, err := s.ResolveEffectivePlan(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if plan.Unlimited {
		return nil, nil
	}
	ids, err := s.productRepo.FindIDsForSiteByCreation(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if len(ids) <= plan.MaxProducts {
		return nil, nil
	}
	return ids[plan.MaxProducts:], nil
}

// QuotaStatus reports catalog usage against the effective plan
func (s *QuotaService) QuotaStatus(ctx context.Context, siteID uuid.UUID) (*QuotaStatusResponse, error) {
	plan, err := s.ResolveEffectivePlan(ctx, siteID)
	if err != nil {
		return nil, err
	}
	count, err := s.productRepo.CountForSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	excess := 0
	canCreate := true
	if !plan.Unlimited {
		if over := count - int64(plan.MaxProducts); over > 0 {
			excess = int(over)
		}
		canCreate = count < int64(plan.MaxProducts)
	}
	return &QuotaStatusResponse{
		Plan:         *plan,
		ProductCount: count,
		ExcessCount:  excess,
		CanCreate:    canCreate,
	}, nil
}

func effectivePlanFrom(p *subscription.Plan, source string) *EffectivePlan {
	return &EffectivePlan{
		Code:        p.Code,
		Name:        p.Name,
		MaxProducts: p.MaxProducts,
		Unlimited:   p.IsUnlimited(),
		Source:      source,
	}
}
