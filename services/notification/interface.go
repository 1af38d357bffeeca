package notification

import (
	"context"
	"fmt"
	"time"

	"serendibgo/models"
	"serendibgo/services/tasks"
	"serendibgo/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationService is the best-effort email side channel. Every method is
// fire-and-forget: callers commit state first, then notify, and a send failure
// must never unwind the state change that preceded it.
type NotificationService interface {
	NotifyTripSubmitted(ctx context.Context, staffInbox string, trip *models.TripRequest)
	NotifyTripApproved(ctx context.Context, trip *models.TripRequest)
	NotifyTripRejected(ctx context.Context, trip *models.TripRequest, reason string)
	NotifyPaymentConfirmation(ctx context.Context, booking *models.Booking, email, name string)
	NotifyPaymentFailure(ctx context.Context, booking *models.Booking, email, name string)
	NotifyRefundConfirmation(ctx context.Context, booking *models.Booking, email, name string, amount float64)
}

// QueueNotificationService enqueues mail tasks on the async worker queue.
type QueueNotificationService struct {
	Client *asynq.Client
}

func NewQueueNotificationService(client *asynq.Client) *QueueNotificationService {
	return &QueueNotificationService{Client: client}
}

// enqueue submits a mail task and swallows any failure after logging it.
func (s *QueueNotificationService) enqueue(payload models.MailPayload) {
	logger := utils.GetLogger()
	task, err := tasks.NewMailTask(payload)
	if err != nil {
		logger.Warn("notification: failed to build mail task",
			zap.String("kind", payload.Kind), zap.Error(err))
		return
	}
	if _, err := s.Client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		logger.Warn("notification: failed to enqueue mail task",
			zap.String("kind", payload.Kind),
			zap.String("recipient", payload.Recipient),
			zap.Error(err))
	}
}

func (s *QueueNotificationService) NotifyTripSubmitted(ctx context.Context, staffInbox string, trip *models.TripRequest) {
	s.enqueue(models.MailPayload{
		Kind:      models.MailTripSubmitted,
		Recipient: staffInbox,
		Name:      "Staff",
		Data: map[string]string{
			"tripId":      trip.ID,
			"customer":    trip.CustomerName,
			"destination": trip.RequestDetails.Destination,
			"startDate":   trip.RequestDetails.StartDate.Format("2006-01-02"),
			"endDate":     trip.RequestDetails.EndDate.Format("2006-01-02"),
			"groupSize":   fmt.Sprintf("%d", trip.RequestDetails.GroupSize),
		},
	})
}

func (s *QueueNotificationService) NotifyTripApproved(ctx context.Context, trip *models.TripRequest) {
	s.enqueue(models.MailPayload{
		Kind:      models.MailTripApproved,
		Recipient: trip.RequestDetails.ContactInfo.Email,
		Name:      trip.RequestDetails.ContactInfo.Name,
		Data: map[string]string{
			"tripId":      trip.ID,
			"destination": trip.RequestDetails.Destination,
			"totalAmount": fmt.Sprintf("%.2f", trip.StaffAssignment.TotalBudget.TotalAmount),
			"comments":    trip.ApprovalDetails.StaffComments,
		},
	})
}

func (s *QueueNotificationService) NotifyTripRejected(ctx context.Context, trip *models.TripRequest, reason string) {
	s.enqueue(models.MailPayload{
		Kind:      models.MailTripRejected,
		Recipient: trip.RequestDetails.ContactInfo.Email,
		Name:      trip.RequestDetails.ContactInfo.Name,
		Data: map[string]string{
			"tripId": trip.ID,
			"reason": reason,
		},
	})
}

func (s *QueueNotificationService) NotifyPaymentConfirmation(ctx context.Context, booking *models.Booking, email, name string) {
	s.enqueue(models.MailPayload{
		Kind:      models.MailPaymentConfirmation,
		Recipient: email,
		Name:      name,
		Data: map[string]string{
			"bookingReference": booking.BookingReference,
			"amountPaid":       fmt.Sprintf("%.2f", booking.AmountPaid),
		},
	})
}

func (s *QueueNotificationService) NotifyPaymentFailure(ctx context.Context, booking *models.Booking, email, name string) {
	s.enqueue(models.MailPayload{
		Kind:      models.MailPaymentFailure,
		Recipient: email,
		Name:      name,
		Data: map[string]string{
			"bookingReference": booking.BookingReference,
			"totalAmount":      fmt.Sprintf("%.2f", booking.TotalAmount),
		},
	})
}

func (s *QueueNotificationService) NotifyRefundConfirmation(ctx context.Context, booking *models.Booking, email, name string, amount float64) {
	s.enqueue(models.MailPayload{
		Kind:      models.MailRefundConfirmation,
		Recipient: email,
		Name:      name,
		Data: map[string]string{
			"bookingReference": booking.BookingReference,
			"refundAmount":     fmt.Sprintf("%.2f", amount),
		},
	})
}
