package activity

import (
	"context"

	"github.com/bolibana/backend/internal/domain/activity"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ActivityService exposes the read side of the audit trail
type ActivityService struct {
	repo activity.Repository
}

// NewActivityService creates a new ActivityService
func NewActivityService(repo activity.Repository) *ActivityService {
	return &ActivityService{repo: repo}
}

// List lists audit entries for a site
func (s *ActivityService) List(ctx context.Context, siteID uuid.UUID, filter ActivityListFilter) (shared.Paginated[ActivityResponse], error) {
	filters := make(map[string]interface{})
	if filter.Action != "" {
		filters["action"] = filter.Action
	}
	if filter.EntityType != "" {
		filters["entity_type"] = filter.EntityType
	}
	if filter.ActorID != nil {
		filters["actor_id"] = *filter.ActorID
	}

	result, err := s.repo.FindAllForSite(ctx, siteID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  filters,
	})
	if err != nil {
		return shared.Paginated[ActivityResponse]{}, err
	}
	return mapActivities(result), nil
}

// ListForEntity lists the audit entries touching a single entity,
// scoped to the caller's site
func (s *ActivityService) ListForEntity(ctx context.Context, siteID, entityID uuid.UUID, filter ActivityListFilter) (shared.Paginated[ActivityResponse], error) {
	result, err := s.repo.FindByEntity(ctx, siteID, entityID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	})
	if err != nil {
		return shared.Paginated[ActivityResponse]{}, err
	}
	return mapActivities(result), nil
}

func mapActivities(result shared.Paginated[*activity.Activity]) shared.Paginated[ActivityResponse] {
	items := make([]ActivityResponse, len(result.Items))
	for i, entry := range result.Items {
		items[i] = toActivityResponse(entry)
	}
	return shared.Paginated[ActivityResponse]{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
}
