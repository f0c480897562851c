package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/garmentshop/internal/server/http/dto"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	// Orders are always placed for the authenticated account; a payload
	// naming someone else's email is rejected.
	user := CurrentUser(c)
	if user == nil || (req.Email != "" && req.Email != user.Email) {
		c.Status(http.StatusForbidden)
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), user.Email, req.ProductID, req.OrderQuantity, req.OrderPrice)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// UpdateStatus handles PATCH /orders/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// Cancel handles PATCH /orders/cancel/:id.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), user.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, dto.ToOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}
