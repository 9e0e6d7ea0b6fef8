package handler

import (
	catalogapp "github.com/bolibana/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BrandHandler handles brand API endpoints
type BrandHandler struct {
	BaseHandler
	brandService *catalogapp.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *catalogapp.BrandService) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
	}
}

// Create godoc
// @Summary      Create a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateBrandRequest true "Brand creation request"
// @Success      201 {object} dto.Response{data=catalogapp.BrandResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	var req catalogapp.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, brand)
}

// GetByID godoc
// @Summary      Get brand by ID
// @Tags         brands
// @Produce      json
// @Param        id path string true "Brand ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.BrandResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /brands/{id} [get]
func (h *BrandHandler) GetByID(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	brand, err := h.brandService.GetByID(c.Request.Context(), siteID, brandID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brand)
}

// List godoc
// @Summary      List brands
// @Tags         brands
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.BrandResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.brandService.List(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// Update godoc
// @Summary      Update a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        id path string true "Brand ID" format(uuid)
// @Param        request body catalogapp.UpdateBrandRequest true "Brand update request"
// @Success      200 {object} dto.Response{data=catalogapp.BrandResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /brands/{id} [put]
func (h *BrandHandler) Update(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	var req catalogapp.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), siteID, brandID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brand)
}

// Delete godoc
// @Summary      Delete a brand
// @Description  Delete a brand. Brands still referenced by products cannot be deleted.
// @Tags         brands
// @Produce      json
// @Param        id path string true "Brand ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /brands/{id} [delete]
func (h *BrandHandler) Delete(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), siteID, brandID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
