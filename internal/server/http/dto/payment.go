package dto

// CheckoutRequest describes an online purchase payload.
type CheckoutRequest struct {
	ProductID     int64   `json:"productId"`
	Email         string  `json:"email"`
	OrderQuantity int     `json:"orderQuantity"`
	OrderPrice    float64 `json:"orderPrice"`
}

// CheckoutResponse returns the gateway redirect target.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// PaymentSuccessResponse reports the reconciliation outcome.
type PaymentSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID int64  `json:"orderId,omitempty"`
}
