package handler

import (
	subscriptionapp "github.com/bolibana/backend/internal/application/subscription"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlanHandler handles platform-level subscription plan endpoints
type PlanHandler struct {
	BaseHandler
	planService *subscriptionapp.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *subscriptionapp.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// Create godoc
// @Summary      Create a plan
// @Description  Define a new subscription plan. A max_products of -1 means unlimited.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request body subscriptionapp.CreatePlanRequest true "Plan creation request"
// @Success      201 {object} dto.Response{data=subscriptionapp.PlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req subscriptionapp.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// List godoc
// @Summary      List plans
// @Tags         plans
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]subscriptionapp.PlanResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.planService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// Update godoc
// @Summary      Update a plan
// @Description  Update a plan's name, description, limit or price. Existing assignments keep the plan code.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Param        request body subscriptionapp.UpdatePlanRequest true "Plan update request"
// @Success      200 {object} dto.Response{data=subscriptionapp.PlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans/{id} [put]
func (h *PlanHandler) Update(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	var req subscriptionapp.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), planID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Retire godoc
// @Summary      Retire a plan
// @Description  Retire a plan so it can no longer be assigned or subscribed to
// @Tags         plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans/{id} [delete]
func (h *PlanHandler) Retire(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	if err := h.planService.Retire(c.Request.Context(), planID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SubscriptionHandler handles site subscription endpoints
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *subscriptionapp.SubscriptionService
	quotaService        *subscriptionapp.QuotaService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *subscriptionapp.SubscriptionService, quotaService *subscriptionapp.QuotaService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		quotaService:        quotaService,
	}
}

// Subscribe godoc
// @Summary      Subscribe the site to a plan
// @Description  Open a pending subscription for the current site
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body subscriptionapp.SubscribeRequest true "Subscription request"
// @Success      201 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	var req subscriptionapp.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sub)
}

// List godoc
// @Summary      List the site's subscriptions
// @Tags         subscriptions
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]subscriptionapp.SubscriptionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscriptions [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.subscriptionService.ListForSite(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// MarkPaid godoc
// @Summary      Mark a subscription paid
// @Description  Activate a pending subscription after payment confirmation
// @Tags         subscriptions
// @Produce      json
// @Param        id path string true "Subscription ID" format(uuid)
// @Success      200 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscriptions/{id}/pay [post]
func (h *SubscriptionHandler) MarkPaid(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subscription ID format")
		return
	}

	sub, err := h.subscriptionService.MarkPaid(c.Request.Context(), subID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sub)
}

// Cancel godoc
// @Summary      Cancel a subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id path string true "Subscription ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscriptions/{id} [delete]
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subscription ID format")
		return
	}

	if err := h.subscriptionService.Cancel(c.Request.Context(), subID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Quota godoc
// @Summary      Get quota status
// @Description  Report the site's effective plan and catalog usage against it
// @Tags         subscriptions
// @Produce      json
// @Success      200 {object} dto.Response{data=subscriptionapp.QuotaStatusResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscriptions/quota [get]
func (h *SubscriptionHandler) Quota(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	status, err := h.quotaService.QuotaStatus(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}
