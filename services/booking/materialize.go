package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"serendibgo/models"
	"serendibgo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// newBookingReference builds a customer-facing reference like
// CT-1735689600000-4F7A2C1B. The timestamp keeps references roughly sortable;
// the random suffix keeps them unguessable.
func newBookingReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("CT-%d-%s", now.UnixMilli(), suffix)
}

// ConfirmTrip materializes a booking for an approved trip request. Order
// matters: the booking is written first, then linked to the trip, and the
// trip flips to confirmed only after the link holds. A crash in between
// leaves a pending booking and an approved trip, which payment can still
// settle against.
func (s *DefaultBookingService) ConfirmTrip(ctx context.Context, actor models.Actor, tripID string) (*models.Booking, error) {
	trip, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NotFoundError{Resource: "trip request", ID: tripID}
	}
	if trip.CustomerID != actor.ID {
		return nil, utils.UnauthorizedError{Message: "not authorized to confirm this trip request"}
	}
	if !trip.CanBeConfirmed() {
		return nil, utils.InvalidStateError{
			Message: fmt.Sprintf("trip in status %q cannot be confirmed", trip.Status),
		}
	}
	if trip.StaffAssignment.TotalBudget.TotalAmount <= 0 {
		return nil, utils.InvalidStateError{Message: "trip has no priced assignment to confirm"}
	}
	if trip.BookingID != "" {
		existing, err := s.Bookings.GetByID(ctx, trip.BookingID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:               uuid.New().String(),
		BookingReference: newBookingReference(now),
		UserID:           trip.CustomerID,
		CustomTripID:     trip.ID,
		BookingDate:      now,
		StartDate:        trip.RequestDetails.StartDate,
		EndDate:          trip.RequestDetails.EndDate,
		Duration:         "multi-day",
		GroupSize:        trip.RequestDetails.GroupSize,
		TotalAmount:      trip.StaffAssignment.TotalBudget.TotalAmount,
		Status:           models.BookingStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		SpecialRequests:  trip.RequestDetails.SpecialRequests,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if err := s.Trips.SetBookingID(ctx, trip.ID, booking.ID); err != nil {
		return nil, fmt.Errorf("failed to link booking to trip: %w", err)
	}
	if err := s.Trips.UpdateStatus(ctx, trip.ID, models.TripStatusConfirmed, nil); err != nil {
		return nil, fmt.Errorf("failed to confirm trip: %w", err)
	}

	utils.GetLogger().Info("booking materialized",
		zap.String("bookingId", booking.ID),
		zap.String("bookingReference", booking.BookingReference),
		zap.String("tripId", trip.ID),
		zap.Float64("totalAmount", booking.TotalAmount))
	return booking, nil
}

// GetByID returns a booking. Customers read their own; staff read any.
func (s *DefaultBookingService) GetByID(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFoundError{Resource: "booking", ID: id}
	}
	if !actor.IsStaff() && booking.UserID != actor.ID {
		return nil, utils.UnauthorizedError{Message: "not authorized to view this booking"}
	}
	return booking, nil
}

// ListForUser returns the actor's bookings.
func (s *DefaultBookingService) ListForUser(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	return s.Bookings.GetByUser(ctx, actor.ID)
}
