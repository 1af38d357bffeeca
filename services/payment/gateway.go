package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"serendibgo/models"
	"serendibgo/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"github.com/stripe/stripe-go/v76/webhook"
)

// PaymentGateway abstracts the payment provider. Amounts cross this boundary
// in currency units; the conversion to gateway minor units (cents) happens
// inside the implementation and nowhere else.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*models.PaymentIntent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*models.PaymentIntent, error)
	CreateRefund(ctx context.Context, intentID string, amount float64) (*models.RefundResult, error)
	// VerifyWebhook checks the payload signature and extracts the payment
	// event, if the event type is one we reconcile. A nil event with a nil
	// error means a valid but irrelevant event type.
	VerifyWebhook(payload []byte, signature string) (*models.PaymentEvent, error)
}

// StripeGateway implements PaymentGateway against the Stripe API.
type StripeGateway struct {
	WebhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{WebhookSecret: webhookSecret}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, utils.GatewayError{Op: "create intent", Err: err}
	}
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       fromMinorUnits(pi.Amount),
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, intentID string) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return nil, utils.GatewayError{Op: "retrieve intent", Err: err}
	}
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       fromMinorUnits(pi.Amount),
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, intentID string, amount float64) (*models.RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}
	params.Context = ctx
	if amount > 0 {
		params.Amount = stripe.Int64(toMinorUnits(amount))
	}

	r, err := refund.New(params)
	if err != nil {
		return nil, utils.GatewayError{Op: "create refund", Err: err}
	}
	return &models.RefundResult{
		RefundID: r.ID,
		Amount:   fromMinorUnits(r.Amount),
		Status:   string(r.Status),
	}, nil
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (*models.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.WebhookSecret)
	if err != nil {
		// A bad signature can never verify on redelivery. Reporting it as a
		// validation failure keeps the transport answer a 4xx so the gateway
		// stops retrying the payload.
		return nil, utils.ValidationError{Message: fmt.Sprintf("webhook signature verification failed: %v", err)}
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
	default:
		return nil, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, utils.ValidationError{Message: fmt.Sprintf("malformed webhook payload: %v", err)}
	}

	outcome := models.PaymentOutcomeSucceeded
	amount := fromMinorUnits(pi.AmountReceived)
	if event.Type == "payment_intent.payment_failed" {
		outcome = models.PaymentOutcomeFailed
		amount = fromMinorUnits(pi.Amount)
	}
	return &models.PaymentEvent{
		IntentID: pi.ID,
		Outcome:  outcome,
		Amount:   amount,
		Currency: string(pi.Currency),
	}, nil
}
