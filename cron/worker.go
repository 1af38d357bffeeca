package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"serendibgo/config"
	"serendibgo/models"
	"serendibgo/services/tasks"
	"serendibgo/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// InitMailWorker runs the async mail worker in background. It drains the
// mail queue that the notification service feeds and delivers over SMTP.
func InitMailWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendMail, handleMailTask)

	go monitorRedisConnection()

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting mail worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("mail worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("mail worker gave up after max retry attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleMailTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.MailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("mail worker: invalid payload", zap.Error(err))
		return err
	}
	if p.Recipient == "" {
		// No address to deliver to; dropping is the whole point of
		// best-effort mail, not a retryable failure.
		logger.Warn("mail worker: dropping mail with empty recipient", zap.String("kind", p.Kind))
		return nil
	}

	subject, body := renderMail(p)
	if err := sendMail(p.Recipient, p.Name, subject, body); err != nil {
		logger.Error("mail worker: delivery failed",
			zap.String("kind", p.Kind), zap.String("recipient", p.Recipient), zap.Error(err))
		return err
	}

	logger.Info("mail delivered",
		zap.String("kind", p.Kind), zap.String("recipient", p.Recipient))
	return nil
}

// renderMail maps a payload to a subject and plain-text body.
func renderMail(p models.MailPayload) (subject, body string) {
	d := p.Data
	switch p.Kind {
	case models.MailTripSubmitted:
		subject = fmt.Sprintf("New custom trip request: %s", d["destination"])
		body = fmt.Sprintf(
			"A new custom trip request has been submitted.\n\n"+
				"Request ID: %s\nCustomer: %s\nDestination: %s\nDates: %s to %s\nGroup size: %s\n\n"+
				"Please review and price the request in the staff dashboard.",
			d["tripId"], d["customer"], d["destination"], d["startDate"], d["endDate"], d["groupSize"])
	case models.MailTripApproved:
		subject = "Your custom trip has been approved"
		body = fmt.Sprintf(
			"Hi %s,\n\nGood news! Your custom trip to %s has been approved.\n\n"+
				"Total: %s\n%s\n\n"+
				"Log in to confirm your trip and proceed to payment.",
			p.Name, d["destination"], d["totalAmount"], d["comments"])
	case models.MailTripRejected:
		subject = "Update on your custom trip request"
		body = fmt.Sprintf(
			"Hi %s,\n\nUnfortunately we are unable to fulfil your custom trip request.\n\n"+
				"Reason: %s\n\n"+
				"You are welcome to submit a new request with adjusted details.",
			p.Name, d["reason"])
	case models.MailPaymentConfirmation:
		subject = fmt.Sprintf("Payment received for booking %s", d["bookingReference"])
		body = fmt.Sprintf(
			"Hi %s,\n\nWe have received your payment of %s for booking %s.\n\n"+
				"Your trip is confirmed. See you soon!",
			p.Name, d["amountPaid"], d["bookingReference"])
	case models.MailPaymentFailure:
		subject = fmt.Sprintf("Payment failed for booking %s", d["bookingReference"])
		body = fmt.Sprintf(
			"Hi %s,\n\nYour payment of %s for booking %s could not be processed.\n\n"+
				"Please try again or use a different payment method.",
			p.Name, d["totalAmount"], d["bookingReference"])
	case models.MailRefundConfirmation:
		subject = fmt.Sprintf("Refund processed for booking %s", d["bookingReference"])
		body = fmt.Sprintf(
			"Hi %s,\n\nA refund of %s has been processed for booking %s.\n\n"+
				"Depending on your bank it may take a few business days to appear.",
			p.Name, d["refundAmount"], d["bookingReference"])
	default:
		subject = "Notification from SerendibGo"
		body = fmt.Sprintf("Hi %s,\n\nYou have a new notification.", p.Name)
	}
	return subject, body
}

func sendMail(to, toName, subject, body string) error {
	cfg := config.AppConfig
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat("SerendibGo", cfg.MailFrom); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if toName != "" {
		err = msg.AddToFormat(toName, to)
	} else {
		err = msg.To(to)
	}
	if err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to deliver mail: %w", err)
	}
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("mail worker: redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
