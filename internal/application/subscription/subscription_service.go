package subscription

import (
	"context"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/subscription"
	"github.com/google/uuid"
)

// PlanService manages the platform-wide plan catalog
type PlanService struct {
	planRepo subscription.PlanRepository
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo subscription.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// Create creates a plan
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*PlanResponse, error) {
	exists, err := s.planRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Plan with this code already exists")
	}

	plan, err := subscription.NewPlan(req.Code, req.Name, req.MaxProducts, req.MonthlyPrice)
	if err != nil {
		return nil, err
	}
	plan.Description = req.Description

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	resp := ToPlanResponse(plan)
	return &resp, nil
}

// Update updates plan fields
func (s *PlanService) Update(ctx context.Context, id uuid.UUID, req UpdatePlanRequest) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.MaxProducts != nil {
		if err := plan.SetLimit(*req.MaxProducts); err != nil {
			return nil, err
		}
	}
	if req.MonthlyPrice != nil {
		if req.MonthlyPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Monthly price cannot be negative")
		}
		plan.MonthlyPrice = req.MonthlyPrice.Round(2)
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	resp := ToPlanResponse(plan)
	return &resp, nil
}

// List lists all plans
func (s *PlanService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[PlanResponse], error) {
	page, err := s.planRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[PlanResponse]{}, err
	}
	items := make([]PlanResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, ToPlanResponse(p))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Retire retires a plan from new subscriptions
func (s *PlanService) Retire(ctx context.Context, id uuid.UUID) error {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	plan.Retire()
	return s.planRepo.Save(ctx, plan)
}

// SubscriptionService manages site subscriptions
type SubscriptionService struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(subscriptionRepo subscription.Repository, planRepo subscription.PlanRepository) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo, planRepo: planRepo}
}

// Subscribe opens a pending subscription for a site
func (s *SubscriptionService) Subscribe(ctx context.Context, siteID uuid.UUID, req SubscribeRequest) (*SubscriptionResponse, error) {
	plan, err := s.planRepo.FindByCode(ctx, req.PlanCode)
	if err != nil {
		return nil, err
	}
	sub, err := subscription.NewSubscription(siteID, plan, req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// MarkPaid activates a subscription after payment confirmation
func (s *SubscriptionService) MarkPaid(ctx context.Context, id uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sub.MarkPaid(time.Now()); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// Cancel stops a subscription
func (s *SubscriptionService) Cancel(ctx context.Context, id uuid.UUID) error {
	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := sub.Cancel(); err != nil {
		return err
	}
	return s.subscriptionRepo.Save(ctx, sub)
}

// ListForSite lists a site's subscription history
func (s *SubscriptionService) ListForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[SubscriptionResponse], error) {
	page, err := s.subscriptionRepo.FindAllForSite(ctx, siteID, filter)
	if err != nil {
		return shared.Paginated[SubscriptionResponse]{}, err
	}
	items := make([]SubscriptionResponse, 0, len(page.Items))
	for _, sub := range page.Items {
		items = append(items, ToSubscriptionResponse(sub))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}
