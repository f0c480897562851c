package model

// CheckoutMetadata travels on the gateway session and is the sole channel
// correlating a completed payment back to purchase intent.
type CheckoutMetadata struct {
	ProductID  int64
	BuyerEmail string
	Quantity   int
	UnitPrice  float64
}

// CheckoutSession mirrors the hosted gateway's session object.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus PaymentStatus
	AmountTotal   float64
	Metadata      CheckoutMetadata
}

// Paid reports whether the gateway settled the session in full.
func (s *CheckoutSession) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}
