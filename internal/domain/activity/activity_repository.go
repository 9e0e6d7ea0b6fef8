package activity

import (
	"context"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence for the audit trail
type Repository interface {
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*Activity], error)
	FindByEntity(ctx context.Context, siteID, entityID uuid.UUID, filter shared.Filter) (shared.Paginated[*Activity], error)
	Save(ctx context.Context, entry *Activity) error
}

// NotificationRepository defines persistence for notifications
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindForUser(ctx context.Context, siteID uuid.UUID, userID uuid.UUID, unreadOnly bool, filter shared.Filter) (shared.Paginated[*Notification], error)
	CountUnreadForUser(ctx context.Context, siteID uuid.UUID, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}
