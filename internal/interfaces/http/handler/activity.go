package handler

import (
	activityapp "github.com/bolibana/backend/internal/application/activity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityHandler handles audit trail API endpoints
type ActivityHandler struct {
	BaseHandler
	activityService *activityapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *activityapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// List godoc
// @Summary      List activities
// @Description  Retrieve the site's audit trail, newest first
// @Tags         activities
// @Produce      json
// @Param        action query string false "Action type filter" example(catalog.product_created)
// @Param        entity_type query string false "Entity type filter" example(Product)
// @Param        actor_id query string false "Actor filter" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]activityapp.ActivityResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	filter, ok := h.bindActivityFilter(c)
	if !ok {
		return
	}

	result, err := h.activityService.List(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// ListForEntity godoc
// @Summary      List activities for an entity
// @Description  Retrieve the audit trail of a single entity
// @Tags         activities
// @Produce      json
// @Param        entityId path string true "Entity ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]activityapp.ActivityResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities/entity/{entityId} [get]
func (h *ActivityHandler) ListForEntity(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID format")
		return
	}

	filter, ok := h.bindActivityFilter(c)
	if !ok {
		return
	}

	result, err := h.activityService.ListForEntity(c.Request.Context(), siteID, entityID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

func (h *ActivityHandler) bindActivityFilter(c *gin.Context) (activityapp.ActivityListFilter, bool) {
	var query struct {
		Page       int    `form:"page" binding:"omitempty,min=1"`
		PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
		Action     string `form:"action"`
		EntityType string `form:"entity_type"`
		ActorID    string `form:"actor_id" binding:"omitempty,uuid"`
		OrderBy    string `form:"order_by"`
		OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return activityapp.ActivityListFilter{}, false
	}

	filter := activityapp.ActivityListFilter{
		Page:       query.Page,
		PageSize:   query.PageSize,
		Action:     query.Action,
		EntityType: query.EntityType,
		OrderBy:    query.OrderBy,
		OrderDir:   query.OrderDir,
	}
	if query.ActorID != "" {
		actorID, err := uuid.Parse(query.ActorID)
		if err != nil {
			h.BadRequest(c, "Invalid actor ID format")
			return activityapp.ActivityListFilter{}, false
		}
		filter.ActorID = &actorID
	}
	return filter, true
}

// NotificationHandler handles user notification API endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *activityapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *activityapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List godoc
// @Summary      List notifications
// @Description  Retrieve the authenticated user's notifications, including site-wide ones
// @Tags         notifications
// @Produce      json
// @Param        unread_only query bool false "Only unread notifications"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]activityapp.NotificationResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter struct {
		Page       int  `form:"page" binding:"omitempty,min=1"`
		PageSize   int  `form:"page_size" binding:"omitempty,min=1,max=100"`
		UnreadOnly bool `form:"unread_only"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.notificationService.List(c.Request.Context(), siteID, userID, activityapp.NotificationListFilter{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		UnreadOnly: filter.UnreadOnly,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// CountUnread godoc
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} dto.Response{data=map[string]int64}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), siteID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"unread": count})
}

// MarkRead godoc
// @Summary      Mark a notification read
// @Description  Mark one of the user's notifications as read. Idempotent.
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      200 {object} dto.Response{data=activityapp.NotificationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), siteID, userID, notificationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notification)
}
