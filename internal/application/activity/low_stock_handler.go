package activity

import (
	"context"
	"fmt"

	"github.com/bolibana/backend/internal/domain/activity"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// LowStockHandler creates site-wide notifications when a stock
// mutation leaves a product at or under its alert threshold.
type LowStockHandler struct {
	repo   activity.NotificationRepository
	logger *zap.Logger
}

// NewLowStockHandler creates a new LowStockHandler
func NewLowStockHandler(repo activity.NotificationRepository, logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{repo: repo, logger: logger}
}

var _ shared.EventHandler = (*LowStockHandler)(nil)

// EventTypes subscribes the handler to stock threshold events
func (h *LowStockHandler) EventTypes() []string {
	return []string{stock.EventTypeStockBelowThreshold}
}

// Handle writes a low stock notification for the product's site
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*stock.StockBelowThresholdEvent)
	if !ok {
		return nil
	}

	level := activity.LevelWarning
	if !e.Quantity.IsPositive() {
		level = activity.LevelAlert
	}

	title := fmt.Sprintf("Stock bas: %s", e.CUG)
	message := fmt.Sprintf("Le produit %s est à %s unités (seuil: %s)",
		e.CUG, e.Quantity.String(), e.Threshold.String())

	notification, err := activity.NewNotification(e.SiteID(), level, title, message)
	if err != nil {
		return err
	}

	if err := h.repo.Save(ctx, notification); err != nil {
		h.logger.Error("Failed to save low stock notification",
			zap.String("cug", e.CUG),
			zap.String("site_id", e.SiteID().String()),
			zap.Error(err))
		return err
	}
	return nil
}
