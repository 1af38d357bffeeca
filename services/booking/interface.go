package booking

import (
	"context"

	"serendibgo/database/repository/booking"
	"serendibgo/database/repository/trip"
	"serendibgo/models"
)

// BookingService materializes bookings from approved trip requests and
// exposes booking reads.
type BookingService interface {
	// ConfirmTrip turns the actor's approved trip request into a pending
	// booking, snapshotting the computed budget as the charge target.
	ConfirmTrip(ctx context.Context, actor models.Actor, tripID string) (*models.Booking, error)
	GetByID(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	ListForUser(ctx context.Context, actor models.Actor) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Trips    tripRepo.TripRepository
}

func NewDefaultBookingService(bookings bookingRepo.BookingRepository, trips tripRepo.TripRepository) *DefaultBookingService {
	return &DefaultBookingService{Bookings: bookings, Trips: trips}
}
