package payment

import (
	"context"

	"serendibgo/database/repository/booking"
	"serendibgo/database/repository/trip"
	"serendibgo/models"
	"serendibgo/services/notification"
)

// PaymentService drives the payment lifecycle of a booking: intent creation,
// reconciliation of gateway outcomes, refunds and status reads.
type PaymentService interface {
	// CreateIntent opens (or re-reports) a payment intent for the booking.
	// The charge amount is always the booking's stored TotalAmount.
	CreateIntent(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentIntent, error)
	// Confirm reconciles the booking against the gateway's current view of
	// the intent. Safe to call after the webhook has already settled it.
	Confirm(ctx context.Context, actor models.Actor, intentID string) (*models.Booking, error)
	// HandleWebhook verifies and applies an asynchronous gateway event. A
	// returned error tells the gateway to redeliver.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	// Refund refunds a paid booking through the gateway and records the
	// gateway-reported amount. Staff only.
	Refund(ctx context.Context, actor models.Actor, bookingID string, amount float64, reason string) (*models.Booking, error)
	// Status returns the customer-facing payment summary for a booking.
	Status(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentStatusView, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Gateway         PaymentGateway
	Bookings        bookingRepo.BookingRepository
	Trips           tripRepo.TripRepository
	NotificationSvc notification.NotificationService
	Currency        string
}

func NewDefaultPaymentService(
	gateway PaymentGateway,
	bookings bookingRepo.BookingRepository,
	trips tripRepo.TripRepository,
	notifier notification.NotificationService,
	currency string,
) *DefaultPaymentService {
	return &DefaultPaymentService{
		Gateway:         gateway,
		Bookings:        bookings,
		Trips:           trips,
		NotificationSvc: notifier,
		Currency:        currency,
	}
}
