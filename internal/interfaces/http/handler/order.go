package handler

import (
	salesapp "github.com/bolibana/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles supplier and customer order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *salesapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *salesapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create godoc
// @Summary      Open an order
// @Description  Open a new supplier or customer order in draft state
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateOrderRequest true "Order creation request"
// @Success      201 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	var req salesapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), siteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), siteID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Update godoc
// @Summary      Update an order
// @Description  Edit a draft order's counterparty and notes
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body salesapp.UpdateOrderRequest true "Order update request"
// @Success      200 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req salesapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), siteID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete an order
// @Description  Remove a draft order. Confirmed orders must be cancelled instead.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), siteID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, nil)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        search query string false "Search by reference or counterparty"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]salesapp.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.orderService.List(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// AddItem godoc
// @Summary      Add a line to an order
// @Description  Add a product line to a draft order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body salesapp.OrderItemRequest true "Line to add"
// @Success      200 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/items [post]
func (h *OrderHandler) AddItem(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req salesapp.OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), siteID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RemoveItem godoc
// @Summary      Remove a line from an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        itemId path string true "Line ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/items/{itemId} [delete]
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), siteID, orderID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Confirm godoc
// @Summary      Confirm an order
// @Description  Confirm a draft order. Confirmed orders accept no further line edits.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), siteID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Deliver godoc
// @Summary      Deliver an order
// @Description  Mark a confirmed order delivered. Supplier orders increment stock, customer orders decrement it.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/deliver [post]
func (h *OrderHandler) Deliver(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var userID *uuid.UUID
	if id, err := getUserID(c); err == nil {
		userID = &id
	}

	order, err := h.orderService.Deliver(c.Request.Context(), siteID, orderID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel godoc
// @Summary      Cancel an order
// @Description  Cancel a draft or confirmed order. Delivered orders cannot be cancelled.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Cancel(c *gin.Context) {
	siteID, err := getSiteID(c)
	if err != nil {
		h.BadRequest(c, "Site not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Cancel(c.Request.Context(), siteID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
