package payment

import (
	"testing"

	"serendibgo/utils"

	"github.com/stretchr/testify/assert"
)

func TestVerifyWebhookRejectsBadSignature(t *testing.T) {
	gw := NewStripeGateway("sk_test_key", "whsec_test")

	_, err := gw.VerifyWebhook([]byte(`{"id":"evt_1"}`), "not-a-signature")
	assert.Error(t, err)

	// The caller's signature can never verify on redelivery, so it surfaces
	// as a validation failure (4xx), not a gateway fault (5xx).
	var validationErr utils.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	var gatewayErr utils.GatewayError
	assert.NotErrorAs(t, err, &gatewayErr)
}
