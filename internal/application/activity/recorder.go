package activity

import (
	"context"
	"encoding/json"

	"github.com/bolibana/backend/internal/domain/activity"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxDetailLength = 500

// Recorder is a wildcard event subscriber that turns every domain
// event into an audit trail row. Events without a site (platform-level
// superuser actions) are skipped.
type Recorder struct {
	repo   activity.Repository
	logger *zap.Logger
}

// NewRecorder creates a new audit trail recorder
func NewRecorder(repo activity.Repository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

var _ shared.EventHandler = (*Recorder)(nil)

// EventTypes returns an empty slice, subscribing the recorder to all
// events.
func (r *Recorder) EventTypes() []string {
	return nil
}

// Handle appends an audit row for the event
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	if event.SiteID() == uuid.Nil {
		return nil
	}

	entry := activity.NewActivity(
		event.SiteID(),
		event.EventType(),
		event.AggregateType(),
		event.AggregateID(),
		eventDetail(event),
	)
	if event.AggregateType() == "User" {
		entry.SetActor(event.AggregateID())
	}

	if err := r.repo.Save(ctx, entry); err != nil {
		r.logger.Error("Failed to record activity",
			zap.String("event_type", event.EventType()),
			zap.String("site_id", event.SiteID().String()),
			zap.Error(err))
		return err
	}
	return nil
}

// eventDetail serializes the event payload, truncated to the column
// width
func eventDetail(event shared.DomainEvent) string {
	payload, err := json.Marshal(event)
	if err != nil {
		return ""
	}
	detail := string(payload)
	if len(detail) > maxDetailLength {
		detail = detail[:maxDetailLength]
	}
	return detail
}
