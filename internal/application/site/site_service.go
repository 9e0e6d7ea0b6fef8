package site

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/shared/valueobject"
	"github.com/bolibana/backend/internal/domain/site"
	"github.com/bolibana/backend/internal/domain/subscription"
	"github.com/google/uuid"
)

// SiteService manages the site registry. All operations are reserved
// for platform superusers except Get on the caller's own site.
type SiteService struct {
	siteRepo       site.Repository
	planRepo       subscription.PlanRepository
	eventPublisher shared.EventPublisher
}

// NewSiteService creates a new SiteService
func NewSiteService(siteRepo site.Repository, planRepo subscription.PlanRepository) *SiteService {
	return &SiteService{siteRepo: siteRepo, planRepo: planRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SiteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new site
func (s *SiteService) Create(ctx context.Context, req CreateSiteRequest) (*SiteResponse, error) {
	exists, err := s.siteRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A site with this name already exists")
	}

	newSite, err := site.NewSite(req.Name)
	if err != nil {
		return nil, err
	}
	newSite.UpdateBranding(site.Branding{
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
	})

	if err := s.siteRepo.Save(ctx, newSite); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, newSite)

	return toSiteResponse(newSite), nil
}

// Get retrieves a single site
func (s *SiteService) Get(ctx context.Context, id uuid.UUID) (*SiteResponse, error) {
	found, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSiteResponse(found), nil
}

// List lists sites matching the filter
func (s *SiteService) List(ctx context.Context, filter SiteListFilter) ([]SiteResponse, int64, error) {
	sites, err := s.siteRepo.FindAll(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	})
	if err != nil {
		return nil, 0, err
	}

	total, err := s.siteRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SiteResponse, len(sites))
	for i := range sites {
		responses[i] = *toSiteResponse(&sites[i])
	}
	return responses, total, nil
}

// Update changes the site name and branding
func (s *SiteService) Update(ctx context.Context, id uuid.UUID, req UpdateSiteRequest) (*SiteResponse, error) {
	found, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != found.Name {
		taken, err := s.siteRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A site with this name already exists")
		}
		if err := found.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	branding := found.Branding
	if req.Description != nil {
		branding.Description = *req.Description
	}
	if req.Address != nil {
		branding.Address = *req.Address
	}
	if req.Phone != nil {
		branding.Phone = *req.Phone
	}
	if req.Email != nil {
		branding.Email = *req.Email
	}
	if req.LogoURL != nil {
		branding.LogoURL = *req.LogoURL
	}
	found.UpdateBranding(branding)

	if err := s.siteRepo.Save(ctx, found); err != nil {
		return nil, err
	}
	return toSiteResponse(found), nil
}

// UpdateConfig changes the currency and tax rate of a site
func (s *SiteService) UpdateConfig(ctx context.Context, id uuid.UUID, req UpdateConfigRequest) (*SiteResponse, error) {
	found, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := found.UpdateConfig(valueobject.Currency(req.Currency), req.TaxRate); err != nil {
		return nil, err
	}

	if err := s.siteRepo.Save(ctx, found); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, found)

	return toSiteResponse(found), nil
}

// AssignPlan assigns a plan code directly to the site. The code must
// reference an existing plan; an empty code clears the assignment.
func (s *SiteService) AssignPlan(ctx context.Context, id uuid.UUID, req AssignPlanRequest) (*SiteResponse, error) {
	found, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PlanCode != "" {
		if _, err := s.planRepo.FindByCode(ctx, req.PlanCode); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("UNKNOWN_PLAN", "Plan code does not reference an existing plan")
			}
			return nil, err
		}
	}
	found.AssignPlan(req.PlanCode)

	if err := s.siteRepo.Save(ctx, found); err != nil {
		return nil, err
	}
	return toSiteResponse(found), nil
}

// Activate reactivates a suspended site
func (s *SiteService) Activate(ctx context.Context, id uuid.UUID) (*SiteResponse, error) {
	found, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := found.Activate(); err != nil {
		return nil, err
	}
	if err := s.siteRepo.Save(ctx, found); err != nil {
		return nil, err
	}
	return toSiteResponse(found), nil
}

// Suspend suspends a site. Suspended sites refuse scoped requests at
// the middleware layer.
func (s *SiteService) Suspend(ctx context.Context, id uuid.UUID) (*SiteResponse, error) {
	found, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := found.Suspend(); err != nil {
		return nil, err
	}
	if err := s.siteRepo.Save(ctx, found); err != nil {
		return nil, err
	}
	return toSiteResponse(found), nil
}

func (s *SiteService) publishDomainEvents(ctx context.Context, aggregate *site.Site) {
	if s.eventPublisher == nil {
		aggregate.ClearDomainEvents()
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		// Publish failures must not fail the business operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	aggregate.ClearDomainEvents()
}
