package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/server/http/dto"
)

// PaymentHandler manages the hosted checkout endpoints.
type PaymentHandler struct {
	facade CheckoutFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade CheckoutFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// CreateSession handles POST /payment-checkout-session.
func (h *PaymentHandler) CreateSession(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user := CurrentUser(c)
	if user == nil || (req.Email != "" && req.Email != user.Email) {
		c.Status(http.StatusForbidden)
		return
	}

	session, err := h.facade.CreateCheckoutSession(c.Request.Context(), user.Email, req.ProductID, req.OrderQuantity, req.OrderPrice)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{SessionID: session.ID, URL: session.URL})
}

// Reconcile handles PATCH /payment-success?session_id=...
func (h *PaymentHandler) Reconcile(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, dto.PaymentSuccessResponse{Success: false, Message: "session_id is required"})
		return
	}

	result, err := h.facade.ReconcilePayment(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, dto.PaymentSuccessResponse{Success: false, Message: "payment already processed"})
		case errors.Is(err, domainErrors.ErrPaymentIncomplete):
			c.JSON(http.StatusBadRequest, dto.PaymentSuccessResponse{Success: false, Message: "payment not completed"})
		default:
			c.JSON(StatusFromError(err), dto.PaymentSuccessResponse{Success: false, Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentSuccessResponse{Success: true, Message: "payment reconciled", OrderID: result.OrderID})
}
