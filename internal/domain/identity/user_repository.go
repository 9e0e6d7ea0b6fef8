package identity

import (
	"context"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence for users.
// Site scoping is applied by the implementation for listing operations;
// lookups by username are global because usernames are unique platform-wide.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*User], error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	CountSiteAdmins(ctx context.Context, siteID uuid.UUID) (int64, error)
	HasDependentRecords(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
