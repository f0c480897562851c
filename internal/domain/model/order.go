package model

import "time"

// OrderStatus describes order fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
	OrderStatusCanceled OrderStatus = "canceled"
)

// PaymentMethod describes how an order is settled.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cash-on-delivery"
	PaymentMethodOnline PaymentMethod = "online"
)

// PaymentStatus describes whether money moved for an order or product.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// validTransitions is the only source of truth for legal status changes.
// Approved, rejected and canceled are terminal.
var validTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending: {
		OrderStatusApproved: true,
		OrderStatusRejected: true,
		OrderStatusCanceled: true,
	},
	OrderStatusApproved: {},
	OrderStatusRejected: {},
	OrderStatusCanceled: {},
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	_, known := validTransitions[s]
	return s, known
}

// CanTransition reports whether the status change is allowed.
func CanTransition(from, to OrderStatus) bool {
	return validTransitions[from][to]
}

// Order describes one purchase intent for a catalog product.
type Order struct {
	ID            int64
	ProductID     int64
	ProductTitle  string
	BuyerEmail    string
	Quantity      int
	UnitPrice     float64
	TotalPrice    float64
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        OrderStatus
	CreatedAt     time.Time
	ApprovedAt    *time.Time
	CanceledAt    *time.Time
}
