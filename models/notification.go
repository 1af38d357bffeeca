package models

// Mail kinds handled by the notification worker.
const (
	MailTripSubmitted       = "trip_submitted"
	MailTripApproved        = "trip_approved"
	MailTripRejected        = "trip_rejected"
	MailPaymentConfirmation = "payment_confirmation"
	MailPaymentFailure      = "payment_failure"
	MailRefundConfirmation  = "refund_confirmation"
)

// MailPayload is the task body enqueued by the notification dispatcher and
// consumed by the mail worker.
type MailPayload struct {
	Kind      string            `json:"kind"`
	Recipient string            `json:"recipient"`
	Name      string            `json:"name"`
	Data      map[string]string `json:"data,omitempty"`
}
