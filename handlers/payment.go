package handlers

import (
	"io"
	"net/http"

	"serendibgo/middleware"
	"serendibgo/services/payment"
	"serendibgo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreatePaymentIntentHandler opens a payment intent for a booking.
func CreatePaymentIntentHandler(svc payment.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		var input struct {
			BookingID string `json:"bookingId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		intent, err := svc.CreateIntent(c.Request.Context(), actor, input.BookingID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, intent)
	}
}

// ConfirmPaymentHandler reconciles a booking against the gateway's view of
// the intent after the customer completes checkout.
func ConfirmPaymentHandler(svc payment.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		var input struct {
			PaymentIntentID string `json:"paymentIntentId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		b, err := svc.Confirm(c.Request.Context(), actor, input.PaymentIntentID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// StripeWebhookHandler receives asynchronous gateway events. It must read
// the raw body for signature verification; a non-2xx answer makes the
// gateway redeliver, which is exactly what we want on storage failures.
func StripeWebhookHandler(svc payment.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		signature := c.GetHeader("Stripe-Signature")
		if err := svc.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
			utils.GetLogger().Error("webhook processing failed", zap.Error(err))
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

// PaymentStatusHandler returns the payment summary for a booking.
func PaymentStatusHandler(svc payment.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		view, err := svc.Status(c.Request.Context(), actor, c.Param("bookingId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// RefundPaymentHandler refunds a paid booking. Staff only.
func RefundPaymentHandler(svc payment.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		var input struct {
			Amount float64 `json:"amount"`
			Reason string  `json:"reason"`
		}
		if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		b, err := svc.Refund(c.Request.Context(), actor, c.Param("bookingId"), input.Amount, input.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}
