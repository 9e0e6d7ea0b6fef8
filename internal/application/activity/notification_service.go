package activity

import (
	"context"
	"time"

	"github.com/bolibana/backend/internal/domain/activity"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationService manages user-facing notifications. A user sees
// notifications addressed to them plus the site-wide ones.
type NotificationService struct {
	repo activity.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo activity.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List lists notifications visible to a user
func (s *NotificationService) List(ctx context.Context, siteID, userID uuid.UUID, filter NotificationListFilter) (shared.Paginated[NotificationResponse], error) {
	result, err := s.repo.FindForUser(ctx, siteID, userID, filter.UnreadOnly, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return shared.Paginated[NotificationResponse]{}, err
	}

	items := make([]NotificationResponse, len(result.Items))
	for i, n := range result.Items {
		items[i] = toNotificationResponse(n)
	}
	return shared.Paginated[NotificationResponse]{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// CountUnread returns the unread badge count for a user
func (s *NotificationService) CountUnread(ctx context.Context, siteID, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnreadForUser(ctx, siteID, userID)
}

// MarkRead marks a notification as read. Only notifications visible to
// the caller can be marked.
func (s *NotificationService) MarkRead(ctx context.Context, siteID, userID, notificationID uuid.UUID) (*NotificationResponse, error) {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.SiteID != siteID {
		return nil, shared.ErrNotFound
	}
	if notification.UserID != nil && *notification.UserID != userID {
		return nil, shared.ErrNotFound
	}

	notification.MarkRead(time.Now())
	if err := s.repo.Save(ctx, notification); err != nil {
		return nil, err
	}

	resp := toNotificationResponse(notification)
	return &resp, nil
}

// Notify creates a notification. A nil userID addresses every user of
// the site.
func (s *NotificationService) Notify(ctx context.Context, siteID uuid.UUID, userID *uuid.UUID, level activity.NotificationLevel, title, message string) (*NotificationResponse, error) {
	notification, err := activity.NewNotification(siteID, level, title, message)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		notification.UserID = userID
	}

	if err := s.repo.Save(ctx, notification); err != nil {
		return nil, err
	}

	resp := toNotificationResponse(notification)
	return &resp, nil
}
