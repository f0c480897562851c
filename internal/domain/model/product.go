package model

import "time"

// Product is a catalog item orders reference. PaymentStatus is the shadow
// flag mutated best-effort by payment reconciliation.
type Product struct {
	ID            int64
	Title         string
	Price         float64
	Stock         int
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
}
