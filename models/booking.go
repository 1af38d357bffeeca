package models

import "time"

// Booking lifecycle statuses. Terminal states are cancelled and completed.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Booking is the payable unit materialized when a customer confirms an
// approved trip request (or books a standard tour).
type Booking struct {
	ID               string     `bson:"id" json:"id"`
	BookingReference string     `bson:"bookingReference" json:"bookingReference"`
	UserID           string     `bson:"userId" json:"userId"`
	TourID           string     `bson:"tourId,omitempty" json:"tourId,omitempty"`
	GuideID          string     `bson:"guideId,omitempty" json:"guideId,omitempty"`
	CustomTripID     string     `bson:"customTripId,omitempty" json:"customTripId,omitempty"`
	BookingDate      time.Time  `bson:"bookingDate" json:"bookingDate"`
	StartDate        time.Time  `bson:"startDate" json:"startDate"`
	EndDate          time.Time  `bson:"endDate" json:"endDate"`
	Duration         string     `bson:"duration" json:"duration"` // "half-day", "full-day", "multi-day"
	GroupSize        int        `bson:"groupSize" json:"groupSize"`
	// TotalAmount is the authoritative charge target, snapshotted from the
	// trip's computed budget at materialization time.
	TotalAmount float64    `bson:"totalAmount" json:"totalAmount"`
	AmountPaid  float64    `bson:"amountPaid" json:"amountPaid"`
	PaymentDate *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	// PaymentIntentID is immutable once set; it is the idempotency key for
	// payment reconciliation.
	PaymentIntentID string    `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	RefundAmount    float64   `bson:"refundAmount" json:"refundAmount"`
	Status          string    `bson:"status" json:"status"`
	PaymentStatus   string    `bson:"paymentStatus" json:"paymentStatus"`
	SpecialRequests string    `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
