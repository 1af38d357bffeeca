package payment

import (
	"context"
	"fmt"
	"time"

	"serendibgo/models"
	"serendibgo/utils"

	"go.uber.org/zap"
)

// CreateIntent opens a payment intent for a pending booking. If the booking
// already carries an intent the existing one is retrieved and returned, so a
// customer retrying checkout never double-charges.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentIntent, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFoundError{Resource: "booking", ID: bookingID}
	}
	if booking.UserID != actor.ID {
		return nil, utils.UnauthorizedError{Message: "not authorized to pay for this booking"}
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return nil, utils.InvalidStateError{Message: "booking is already paid"}
	}
	if booking.PaymentStatus == models.PaymentStatusRefunded {
		return nil, utils.InvalidStateError{Message: "booking has been refunded"}
	}
	if booking.TotalAmount <= 0 {
		return nil, utils.InvalidStateError{Message: "booking has no chargeable amount"}
	}

	if booking.PaymentIntentID != "" {
		return s.Gateway.RetrieveIntent(ctx, booking.PaymentIntentID)
	}

	intent, err := s.Gateway.CreateIntent(ctx, booking.TotalAmount, s.Currency, map[string]string{
		"bookingId":        booking.ID,
		"bookingReference": booking.BookingReference,
		"userId":           booking.UserID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Bookings.SetPaymentIntentID(ctx, booking.ID, intent.ID); err != nil {
		// Lost the race against a concurrent create. The stored intent wins;
		// the one we just opened is abandoned unconfirmed.
		stored, gerr := s.Bookings.GetByID(ctx, booking.ID)
		if gerr == nil && stored != nil && stored.PaymentIntentID != "" {
			utils.GetLogger().Warn("abandoning duplicate payment intent",
				zap.String("bookingId", booking.ID),
				zap.String("abandonedIntent", intent.ID),
				zap.String("storedIntent", stored.PaymentIntentID))
			return s.Gateway.RetrieveIntent(ctx, stored.PaymentIntentID)
		}
		return nil, fmt.Errorf("failed to attach payment intent to booking: %w", err)
	}

	utils.GetLogger().Info("payment intent created",
		zap.String("bookingId", booking.ID),
		zap.String("intentId", intent.ID),
		zap.Float64("amount", booking.TotalAmount))
	return intent, nil
}

// applyEvent is the single reconciliation path. Both the synchronous confirm
// call and the webhook funnel through it, so dedup logic lives in one place:
// the conditional repository updates decide whether this observation is the
// first, and side effects fire only on first application.
func (s *DefaultPaymentService) applyEvent(ctx context.Context, ev models.PaymentEvent) (*models.Booking, error) {
	logger := utils.GetLogger()

	switch ev.Outcome {
	case models.PaymentOutcomeSucceeded:
		booking, applied, err := s.Bookings.MarkPaid(ctx, ev.IntentID, ev.Amount, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, utils.NotFoundError{Resource: "booking for payment intent", ID: ev.IntentID}
		}
		if !applied {
			// A crash between the booking and trip writes leaves the trip
			// behind, so redeliveries re-run the idempotent trip update.
			// Only the notification is first-application.
			if booking.CustomTripID != "" {
				if err := s.Trips.MarkConfirmedPaid(ctx, booking.CustomTripID); err != nil {
					return nil, fmt.Errorf("failed to mark trip paid: %w", err)
				}
			}
			logger.Info("duplicate payment success ignored",
				zap.String("intentId", ev.IntentID),
				zap.String("bookingId", booking.ID))
			return booking, nil
		}
		if booking.CustomTripID != "" {
			if err := s.Trips.MarkConfirmedPaid(ctx, booking.CustomTripID); err != nil {
				return nil, fmt.Errorf("failed to mark trip paid: %w", err)
			}
		}
		email, name := s.contactFor(ctx, booking)
		s.NotificationSvc.NotifyPaymentConfirmation(ctx, booking, email, name)
		logger.Info("payment reconciled as paid",
			zap.String("intentId", ev.IntentID),
			zap.String("bookingId", booking.ID),
			zap.Float64("amountPaid", ev.Amount))
		return booking, nil

	case models.PaymentOutcomeFailed:
		booking, applied, err := s.Bookings.MarkFailed(ctx, ev.IntentID)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, utils.NotFoundError{Resource: "booking for payment intent", ID: ev.IntentID}
		}
		if !applied {
			// A failure observed after a success is stale ordering from the
			// gateway, never a reason to regress a paid booking.
			if booking.PaymentStatus == models.PaymentStatusPaid {
				logger.Warn("stale payment failure ignored for paid booking",
					zap.String("intentId", ev.IntentID),
					zap.String("bookingId", booking.ID))
			}
			return booking, nil
		}
		email, name := s.contactFor(ctx, booking)
		s.NotificationSvc.NotifyPaymentFailure(ctx, booking, email, name)
		logger.Info("payment reconciled as failed",
			zap.String("intentId", ev.IntentID),
			zap.String("bookingId", booking.ID))
		return booking, nil

	default:
		return nil, utils.ValidationError{Message: fmt.Sprintf("unknown payment outcome %q", ev.Outcome)}
	}
}

// Confirm pulls the gateway's current view of the intent and reconciles the
// booking against it. The caller must own the booking the intent belongs to.
func (s *DefaultPaymentService) Confirm(ctx context.Context, actor models.Actor, intentID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFoundError{Resource: "booking for payment intent", ID: intentID}
	}
	if booking.UserID != actor.ID && !actor.IsStaff() {
		return nil, utils.UnauthorizedError{Message: "not authorized to confirm this payment"}
	}

	intent, err := s.Gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case "succeeded":
		return s.applyEvent(ctx, models.PaymentEvent{
			IntentID: intentID,
			Outcome:  models.PaymentOutcomeSucceeded,
			Amount:   intent.Amount,
			Currency: intent.Currency,
		})
	case "canceled":
		return s.applyEvent(ctx, models.PaymentEvent{
			IntentID: intentID,
			Outcome:  models.PaymentOutcomeFailed,
			Amount:   intent.Amount,
			Currency: intent.Currency,
		})
	default:
		// Still in flight on the gateway side; nothing to reconcile yet.
		return nil, utils.InvalidStateError{
			Message: fmt.Sprintf("payment intent is %s, not settled", intent.Status),
		}
	}
}

// HandleWebhook verifies the gateway signature and applies the event. Errors
// propagate so the transport layer answers non-2xx and the gateway retries;
// irrelevant event types acknowledge silently.
func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := s.Gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return err
	}
	if ev == nil {
		return nil
	}
	if _, err := s.applyEvent(ctx, *ev); err != nil {
		return fmt.Errorf("failed to apply webhook event for intent %s: %w", ev.IntentID, err)
	}
	return nil
}

// Refund refunds a paid booking. The recorded refund amount is whatever the
// gateway reports as processed, not the requested figure.
func (s *DefaultPaymentService) Refund(ctx context.Context, actor models.Actor, bookingID string, amount float64, reason string) (*models.Booking, error) {
	if !actor.IsStaff() {
		return nil, utils.UnauthorizedError{Message: "staff role required"}
	}

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFoundError{Resource: "booking", ID: bookingID}
	}
	if booking.PaymentStatus != models.PaymentStatusPaid {
		return nil, utils.InvalidStateError{Message: "only paid bookings can be refunded"}
	}
	if booking.PaymentIntentID == "" {
		return nil, utils.InvalidStateError{Message: "booking has no payment intent to refund against"}
	}

	result, err := s.Gateway.CreateRefund(ctx, booking.PaymentIntentID, amount)
	if err != nil {
		return nil, err
	}

	if err := s.Bookings.MarkRefunded(ctx, booking.ID, result.Amount); err != nil {
		return nil, fmt.Errorf("failed to record refund for booking %s: %w", booking.ID, err)
	}
	booking.PaymentStatus = models.PaymentStatusRefunded
	booking.Status = models.BookingStatusCancelled
	booking.RefundAmount = result.Amount

	email, name := s.contactFor(ctx, booking)
	s.NotificationSvc.NotifyRefundConfirmation(ctx, booking, email, name, result.Amount)

	utils.GetLogger().Info("refund processed",
		zap.String("bookingId", booking.ID),
		zap.String("refundId", result.RefundID),
		zap.Float64("refundAmount", result.Amount),
		zap.String("reason", reason))
	return booking, nil
}

// Status returns the payment summary for a booking the actor may read.
func (s *DefaultPaymentService) Status(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentStatusView, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFoundError{Resource: "booking", ID: bookingID}
	}
	if booking.UserID != actor.ID && !actor.IsStaff() {
		return nil, utils.UnauthorizedError{Message: "not authorized to view this booking"}
	}
	return &models.PaymentStatusView{
		BookingID:       booking.ID,
		BookingStatus:   booking.Status,
		PaymentStatus:   booking.PaymentStatus,
		TotalAmount:     booking.TotalAmount,
		AmountPaid:      booking.AmountPaid,
		PaymentIntentID: booking.PaymentIntentID,
	}, nil
}

// contactFor resolves the notification recipient for a booking through its
// linked trip request. Missing contact details degrade to no email, never to
// an error: notifications are best-effort.
func (s *DefaultPaymentService) contactFor(ctx context.Context, booking *models.Booking) (email, name string) {
	if booking.CustomTripID == "" {
		return "", ""
	}
	trip, err := s.Trips.GetByID(ctx, booking.CustomTripID)
	if err != nil || trip == nil {
		utils.GetLogger().Warn("could not resolve contact for booking notification",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return "", ""
	}
	return trip.CustomerEmail, trip.CustomerName
}
