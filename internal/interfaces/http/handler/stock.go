package handler

import (
	stockapp "github.com/bolibana/backend/internal/application/stock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock movement API endpoints
type StockHandler struct {
	BaseHandler
	stockService *stockapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *stockapp.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// Record godoc
// @Summary      Record a stock movement
// @Description  Append an entry to the stock ledger. Quantity is signed by the movement type.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body stockapp.RecordTransactionRequest true "Movement to record"
// @Success      201 {object} dto.Response{data=stockapp.TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/transactions [post]
func (h *StockHandler) Record(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	var req stockapp.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.UserID = &userID
	}

	entry, err := h.stockService.Record(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// Adjust godoc
// @Summary      Adjust a product's quantity
// @Description  Set the product's absolute quantity. The delta is recorded as an adjustment entry.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body stockapp.AdjustQuantityRequest true "Adjustment request"
// @Success      200 {object} dto.Response{data=stockapp.AdjustmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/adjustments [post]
func (h *StockHandler) Adjust(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	var req stockapp.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.UserID = &userID
	}

	result, err := h.stockService.Adjust(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @Summary      List stock movements
// @Description  Retrieve the site's stock ledger, newest first
// @Tags         stock
// @Produce      json
// @Param        product_id query string false "Product filter" format(uuid)
// @Param        type query string false "Movement type filter" Enums(in, out, loss, adjustment, backorder)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]stockapp.TransactionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/transactions [get]
func (h *StockHandler) List(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	var filter stockapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.stockService.List(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// GetByID godoc
// @Summary      Get a stock movement
// @Tags         stock
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} dto.Response{data=stockapp.TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/transactions/{id} [get]
func (h *StockHandler) GetByID(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	result, err := h.stockService.GetByID(c.Request.Context(), siteID, transactionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
