package handler

import (
	dashboardapp "github.com/bolibana/backend/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Get godoc
// @Summary      Get the site dashboard
// @Description  Aggregate catalog, stock and daily sales figures for the current site. Served from cache unless refresh is set.
// @Tags         dashboard
// @Produce      json
// @Param        refresh query bool false "Bypass the cache and recompute"
// @Success      200 {object} dto.Response{data=dashboardapp.DashboardResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	refresh := c.Query("refresh") == "true" || c.Query("refresh") == "1"

	dashboard, err := h.dashboardService.Get(c.Request.Context(), siteID, refresh)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
