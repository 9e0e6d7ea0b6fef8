package site

import (
	"context"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for sites
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Site, error)
	FindByName(ctx context.Context, name string) (*Site, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Site, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, s *Site) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
