package routes

import (
	"net/http"
	"time"

	"serendibgo/handlers"
	"serendibgo/middleware"
	"serendibgo/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm SerendibGo",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterTripRoutes registers custom trip request endpoints.
func RegisterTripRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/custom-trips")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.SubmitTrip)
		api.GET("/my-trips", hb.ListMyTrips)
		api.GET("/:id", hb.GetTrip)
		api.POST("/:id/confirm", hb.ConfirmTrip)
		api.DELETE("/:id", hb.DeleteTrip)

		// Staff workflow endpoints.
		staff := api.Group("")
		staff.Use(middleware.RequireStaff())
		staff.GET("", hb.ListAllTrips)
		staff.GET("/statistics", hb.TripStatistics)
		staff.POST("/bulk-action", hb.BulkTripAction)
		staff.PUT("/:id/assignment", hb.UpdateAssignment)
		staff.PUT("/:id/approve", hb.ApproveTrip)
		staff.PUT("/:id/reject", hb.RejectTrip)
		staff.PUT("/:id/complete", hb.CompleteTrip)
	}
}

// RegisterBookingRoutes registers booking read endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/my-bookings", hb.ListMyBookings)
		api.GET("/:id", hb.GetBooking)
	}
}

// RegisterPaymentRoutes registers payment endpoints. The webhook endpoint is
// unauthenticated: the gateway signs its payloads instead of carrying a
// bearer token.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.StripeWebhook)

	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/create-intent", hb.CreatePaymentIntent)
		api.POST("/confirm", hb.ConfirmPayment)
		api.GET("/status/:bookingId", hb.PaymentStatus)
		api.POST("/refund/:bookingId", middleware.RequireStaff(), hb.RefundPayment)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterTripRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
