package dto

import (
	"time"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

// PlaceOrderRequest describes a cash-on-delivery order payload.
type PlaceOrderRequest struct {
	ProductID     int64   `json:"productId"`
	Email         string  `json:"email"`
	OrderQuantity int     `json:"orderQuantity"`
	OrderPrice    float64 `json:"orderPrice"`
}

// OrderStatusRequest describes a manager's transition payload.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the public order representation.
type OrderResponse struct {
	ID            int64      `json:"id"`
	ProductID     int64      `json:"productId"`
	ProductTitle  string     `json:"productTitle"`
	Email         string     `json:"email"`
	Quantity      int        `json:"orderQuantity"`
	UnitPrice     float64    `json:"orderPrice"`
	TotalPrice    float64    `json:"totalPrice"`
	PaymentMethod string     `json:"paymentMethod"`
	PaymentStatus string     `json:"paymentStatus"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	CanceledAt    *time.Time `json:"canceledAt,omitempty"`
}

// ToOrderResponse converts an order model into its transport form.
func ToOrderResponse(order *model.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		ProductID:     order.ProductID,
		ProductTitle:  order.ProductTitle,
		Email:         order.BuyerEmail,
		Quantity:      order.Quantity,
		UnitPrice:     order.UnitPrice,
		TotalPrice:    order.TotalPrice,
		PaymentMethod: string(order.PaymentMethod),
		PaymentStatus: string(order.PaymentStatus),
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
		ApprovedAt:    order.ApprovedAt,
		CanceledAt:    order.CanceledAt,
	}
}
