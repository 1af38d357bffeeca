package handlers

import (
	"net/http"

	"serendibgo/middleware"
	"serendibgo/services/booking"

	"github.com/gin-gonic/gin"
)

// ConfirmTripHandler materializes a booking from an approved trip request.
func ConfirmTripHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		b, err := svc.ConfirmTrip(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

// GetBookingHandler returns a single booking.
func GetBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		b, err := svc.GetByID(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// ListMyBookingsHandler lists the caller's bookings.
func ListMyBookingsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		bookings, err := svc.ListForUser(c.Request.Context(), actor)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
	}
}
