package model

import "time"

// Well-known tracking labels emitted by the order and payment flows.
// The column itself is free text so manual notes can carry anything.
const (
	TrackingOrderPlaced    = "order placed"
	TrackingPaymentSuccess = "payment success"
)

// TrackingEvent is an immutable milestone in an order's fulfillment history.
type TrackingEvent struct {
	ID        int64
	OrderID   int64
	Status    string
	Note      string
	CreatedAt time.Time
}
