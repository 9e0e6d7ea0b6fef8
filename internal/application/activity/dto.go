package activity

import (
	"time"

	"github.com/bolibana/backend/internal/domain/activity"
	"github.com/google/uuid"
)

// ActivityListFilter holds audit trail listing parameters
type ActivityListFilter struct {
	Page       int
	PageSize   int
	Action     string
	EntityType string
	ActorID    *uuid.UUID
	OrderBy    string
	OrderDir   string
}

// ActivityResponse is the outward representation of an audit entry
type ActivityResponse struct {
	ID         uuid.UUID  `json:"id"`
	SiteID     uuid.UUID  `json:"site_id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	Detail     string     `json:"detail,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NotificationListFilter holds notification listing parameters
type NotificationListFilter struct {
	Page       int
	PageSize   int
	UnreadOnly bool
}

// NotificationResponse is the outward representation of a notification
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	SiteID    uuid.UUID  `json:"site_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Level     string     `json:"level"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toActivityResponse(a *activity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:         a.ID,
		SiteID:     a.SiteID,
		ActorID:    a.ActorID,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Detail:     a.Detail,
		OccurredAt: a.OccurredAt,
	}
}

func toNotificationResponse(n *activity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		SiteID:    n.SiteID,
		UserID:    n.UserID,
		Level:     string(n.Level),
		Title:     n.Title,
		Message:   n.Message,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
