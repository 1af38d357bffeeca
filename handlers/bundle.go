package handlers

import (
	"serendibgo/services/booking"
	"serendibgo/services/payment"
	"serendibgo/services/trip"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Trip request endpoints
	SubmitTrip       gin.HandlerFunc
	GetTrip          gin.HandlerFunc
	ListMyTrips      gin.HandlerFunc
	ListAllTrips     gin.HandlerFunc
	TripStatistics   gin.HandlerFunc
	UpdateAssignment gin.HandlerFunc
	ApproveTrip      gin.HandlerFunc
	RejectTrip       gin.HandlerFunc
	BulkTripAction   gin.HandlerFunc
	CompleteTrip     gin.HandlerFunc
	DeleteTrip       gin.HandlerFunc

	// Booking endpoints
	ConfirmTrip    gin.HandlerFunc
	GetBooking     gin.HandlerFunc
	ListMyBookings gin.HandlerFunc

	// Payment endpoints
	CreatePaymentIntent gin.HandlerFunc
	ConfirmPayment      gin.HandlerFunc
	StripeWebhook       gin.HandlerFunc
	PaymentStatus       gin.HandlerFunc
	RefundPayment       gin.HandlerFunc
}

// NewHandlerBundle wires the services into their handlers.
func NewHandlerBundle(
	tripSvc trip.TripService,
	bookingSvc booking.BookingService,
	paymentSvc payment.PaymentService,
) *HandlerBundle {
	return &HandlerBundle{
		SubmitTrip:       SubmitTripHandler(tripSvc),
		GetTrip:          GetTripHandler(tripSvc),
		ListMyTrips:      ListMyTripsHandler(tripSvc),
		ListAllTrips:     ListAllTripsHandler(tripSvc),
		TripStatistics:   TripStatisticsHandler(tripSvc),
		UpdateAssignment: UpdateAssignmentHandler(tripSvc),
		ApproveTrip:      ApproveTripHandler(tripSvc),
		RejectTrip:       RejectTripHandler(tripSvc),
		BulkTripAction:   BulkTripActionHandler(tripSvc),
		CompleteTrip:     CompleteTripHandler(tripSvc),
		DeleteTrip:       DeleteTripHandler(tripSvc),

		ConfirmTrip:    ConfirmTripHandler(bookingSvc),
		GetBooking:     GetBookingHandler(bookingSvc),
		ListMyBookings: ListMyBookingsHandler(bookingSvc),

		CreatePaymentIntent: CreatePaymentIntentHandler(paymentSvc),
		ConfirmPayment:      ConfirmPaymentHandler(paymentSvc),
		StripeWebhook:       StripeWebhookHandler(paymentSvc),
		PaymentStatus:       PaymentStatusHandler(paymentSvc),
		RefundPayment:       RefundPaymentHandler(paymentSvc),
	}
}
