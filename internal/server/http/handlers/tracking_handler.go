package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/garmentshop/internal/server/http/dto"
)

// TrackingHandler manages fulfillment milestone endpoints.
type TrackingHandler struct {
	facade TrackingFacade
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(facade TrackingFacade) *TrackingHandler {
	return &TrackingHandler{facade: facade}
}

// Append handles POST /trackings.
func (h *TrackingHandler) Append(c *gin.Context) {
	var req dto.TrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.OrderID == 0 || req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.facade.AppendTracking(c.Request.Context(), req.OrderID, req.Status, req.Note)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTrackingResponse(event))
}

// History handles GET /trackings/:id and its query alias GET /trackings?orderId=...
func (h *TrackingHandler) History(c *gin.Context) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("orderId")
	}
	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orderID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	events, err := h.facade.TrackingHistory(c.Request.Context(), orderID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := make([]dto.TrackingResponse, 0, len(events))
	for i := range events {
		response = append(response, dto.ToTrackingResponse(&events[i]))
	}
	c.JSON(http.StatusOK, response)
}
