package activity

import (
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Activity is an append-only audit row recording who did what on which
// entity. Rows are written by the event subscriber, never edited.
type Activity struct {
	shared.BaseEntity
	SiteID     uuid.UUID  `gorm:"type:uuid;index"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"type:varchar(60);not null;index"`
	EntityType string     `gorm:"type:varchar(40);not null"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Detail     string     `gorm:"type:varchar(500)"`
	OccurredAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Activity) TableName() string {
	return "activities"
}

// NewActivity records an audit entry
func NewActivity(siteID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) *Activity {
	return &Activity{
		BaseEntity: shared.NewBaseEntity(),
		SiteID:     siteID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     strings.TrimSpace(detail),
		OccurredAt: time.Now(),
	}
}

// SetActor attributes the entry to a user
func (a *Activity) SetActor(userID uuid.UUID) {
	a.ActorID = &userID
}
