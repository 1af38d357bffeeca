package models

// Payment event outcomes, as reported by the gateway.
const (
	PaymentOutcomeSucceeded = "succeeded"
	PaymentOutcomeFailed    = "failed"
)

// PaymentEvent is a single observed outcome for a payment intent, arriving
// either from the synchronous confirm call or from an asynchronous webhook.
// Applying the same event more than once must be a no-op.
type PaymentEvent struct {
	IntentID string  `json:"intentId"`
	Outcome  string  `json:"outcome"`
	// Amount is the gateway-reported charged amount in currency units. The
	// gateway is authoritative for what was actually charged.
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// PaymentIntent is the gateway handle for a single attempted charge.
type PaymentIntent struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
}

// RefundResult is the gateway's report of a processed refund.
type RefundResult struct {
	RefundID string  `json:"refundId"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

// PaymentStatusView is the customer-facing payment summary for a booking.
type PaymentStatusView struct {
	BookingID       string  `json:"bookingId"`
	BookingStatus   string  `json:"bookingStatus"`
	PaymentStatus   string  `json:"paymentStatus"`
	TotalAmount     float64 `json:"totalAmount"`
	AmountPaid      float64 `json:"amountPaid"`
	PaymentIntentID string  `json:"paymentIntentId,omitempty"`
}
