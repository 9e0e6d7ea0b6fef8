package handler

import (
	siteapp "github.com/bolibana/backend/internal/application/site"
	"github.com/bolibana/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SiteHandler handles platform-level site administration endpoints
type SiteHandler struct {
	BaseHandler
	siteService *siteapp.SiteService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteService *siteapp.SiteService) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
	}
}

// Create godoc
// @Summary      Create a site
// @Description  Register a new site on the platform
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        request body siteapp.CreateSiteRequest true "Site creation request"
// @Success      201 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sites [post]
func (h *SiteHandler) Create(c *gin.Context) {
	var req siteapp.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	site, err := h.siteService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, site)
}

// GetByID godoc
// @Summary      Get site by ID
// @Description  Retrieve a site by its ID
// @Tags         sites
// @Produce      json
// @Param        id path string true "Site ID" format(uuid)
// @Success      200 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sites/{id} [get]
func (h *SiteHandler) GetByID(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	site, err := h.siteService.Get(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, site)
}

// List godoc
// @Summary      List sites
// @Description  Retrieve a paginated list of sites
// @Tags         sites
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]siteapp.SiteResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sites [get]
func (h *SiteHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	sites, total, err := h.siteService.List(c.Request.Context(), siteapp.SiteListFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sites, total, listReq.Page, listReq.PageSize)
}

// Update godoc
// @Summary      Update a site
// @Description  Update a site's name and branding fields
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        id path string true "Site ID" format(uuid)
// @Param        request body siteapp.UpdateSiteRequest true "Site update request"
// @Success      200 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sites/{id} [put]
func (h *SiteHandler) Update(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	var req siteapp.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	site, err := h.siteService.Update(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, site)
}

// UpdateConfig godoc
// @Summary      Update site configuration
// @Description  Update a site's currency and tax rate
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        id path string true "Site ID" format(uuid)
// @Param        request body siteapp.UpdateConfigRequest true "Configuration update request"
// @Success      200 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sites/{id}/config [put]
func (h *SiteHandler) UpdateConfig(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	var req siteapp.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	site, err := h.siteService.UpdateConfig(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, site)
}

// GetMySite godoc
// @Summary      Get own site
// @Description  Retrieve the caller's site with its configuration
// @Tags         site
// @Produce      json
// @Success      200 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /site [get]
func (h *SiteHandler) GetMySite(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	site, err := h.siteService.Get(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, site)
}

// UpdateMyConfig godoc
// @Summary      Update own site configuration
// @Description  Update the caller's site currency and tax rate. Site admin only.
// @Tags         site
// @Accept       json
// @Produce      json
// @Param        request body siteapp.UpdateConfigRequest true "Configuration update request"
// @Success      200 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /site/config [put]
func (h *SiteHandler) UpdateMyConfig(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	var req siteapp.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	site, err := h.siteService.UpdateConfig(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, site)
}

// AssignPlan godoc
// @Summary      Assign a plan to a site
// @Description  Set or clear the site's directly assigned subscription plan
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        id path string true "Site ID" format(uuid)
// @Param        request body siteapp.AssignPlanRequest true "Plan assignment request"
// @Success      200 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sites/{id}/plan [put]
func (h *SiteHandler) AssignPlan(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	var req siteapp.AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	site, err := h.siteService.AssignPlan(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, site)
}

// Activate godoc
// @Summary      Activate a site
// @Description  Reactivate a suspended site
// @Tags         sites
// @Produce      json
// @Param        id path string true "Site ID" format(uuid)
// @Success      200 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sites/{id}/activate [post]
func (h *SiteHandler) Activate(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	site, err := h.siteService.Activate(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, site)
}

// Suspend godoc
// @Summary      Suspend a site
// @Description  Suspend a site. Its members can no longer operate on it until reactivated.
// @Tags         sites
// @Produce      json
// @Param        id path string true "Site ID" format(uuid)
// @Success      200 {object} dto.Response{data=siteapp.SiteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sites/{id}/suspend [post]
func (h *SiteHandler) Suspend(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	site, err := h.siteService.Suspend(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, site)
}
