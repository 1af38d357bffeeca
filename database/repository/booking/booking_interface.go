package bookingRepo

import (
	"context"
	"time"

	"serendibgo/models"
)

// BookingRepository defines methods for booking data access. The conditional
// update methods are the serialization point for payment reconciliation:
// concurrent webhook retries and confirm calls race through them safely.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByUser retrieves all bookings owned by a user.
	GetByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// GetByPaymentIntentID retrieves the booking correlated with a gateway
	// payment intent. Returns nil when no booking carries the intent.
	GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Booking, error)
	// SetPaymentIntentID writes the intent correlation id. It only succeeds
	// while the booking has no intent attached; the id is immutable once set.
	SetPaymentIntentID(ctx context.Context, bookingID, intentID string) error
	// MarkPaid atomically transitions the booking identified by intentID to
	// paid/confirmed, recording the gateway-reported amount and payment time.
	// It applies only if the booking is not already paid; the returned flag
	// reports whether this call performed the transition.
	MarkPaid(ctx context.Context, intentID string, amountPaid float64, paidAt time.Time) (*models.Booking, bool, error)
	// MarkFailed atomically flags a pending payment as failed. Paid or
	// refunded bookings are never regressed; the flag reports whether this
	// call performed the transition.
	MarkFailed(ctx context.Context, intentID string) (*models.Booking, bool, error)
	// MarkRefunded records a processed refund: paymentStatus refunded, status
	// cancelled, refundAmount as reported by the gateway.
	MarkRefunded(ctx context.Context, bookingID string, refundAmount float64) error
}
