package activity

import (
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationLevel grades the urgency of a message
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
	LevelAlert   NotificationLevel = "alert"
)

// Notification is a user-facing message such as a low stock alert or a
// quota warning
type Notification struct {
	shared.BaseEntity
	SiteID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	UserID  *uuid.UUID        `gorm:"type:uuid;index"` // nil targets every user of the site
	Level   NotificationLevel `gorm:"type:varchar(10);not null;default:'info'"`
	Title   string            `gorm:"type:varchar(120);not null"`
	Message string            `gorm:"type:varchar(500);not null"`
	ReadAt  *time.Time        `gorm:"index"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification for a site
func NewNotification(siteID uuid.UUID, level NotificationLevel, title, message string) (*Notification, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return nil, shared.NewDomainError("INVALID_NOTIFICATION", "Title and message are required")
	}
	switch level {
	case LevelInfo, LevelWarning, LevelAlert:
	default:
		level = LevelInfo
	}
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		SiteID:     siteID,
		Level:      level,
		Title:      title,
		Message:    message,
	}, nil
}

// MarkRead stamps the notification as read, idempotently
func (n *Notification) MarkRead(at time.Time) {
	if n.ReadAt == nil {
		n.ReadAt = &at
	}
}

// IsRead reports whether the notification was read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
