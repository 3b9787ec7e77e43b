package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEventKind(t *testing.T) {
	assert.Equal(t, EventPaymentSucceeded, NormalizeEventKind("checkout.session.completed"))
	assert.Equal(t, EventPaymentSucceeded, NormalizeEventKind("checkout.session.async_payment_succeeded"))
	assert.Equal(t, EventPaymentFailed, NormalizeEventKind("payment_intent.payment_failed"))
	assert.Equal(t, EventSessionExpired, NormalizeEventKind("checkout.session.expired"))
	assert.Equal(t, EventAuthorizationSucceeded, NormalizeEventKind("payment_intent.amount_capturable_updated"))
	assert.Equal(t, EventAuthorizationExpired, NormalizeEventKind("payment_intent.canceled"))
	assert.Equal(t, EventCaptureSucceeded, NormalizeEventKind("payment_intent.succeeded"))

	// Canonical names map to themselves.
	assert.Equal(t, EventPaymentSucceeded, NormalizeEventKind("payment.succeeded"))

	assert.Equal(t, EventUnknown, NormalizeEventKind("invoice.finalized"))
	assert.Equal(t, EventUnknown, NormalizeEventKind(""))
}

func TestParseWebhookEventNestedShape(t *testing.T) {
	data := []byte(`{"object":{"id":"cs_test_1","payment_intent":"pi_test_1","status":"complete"}}`)

	ev, err := ParseWebhookEvent("checkout.session.completed", data)
	assert.Nil(t, err)
	assert.Equal(t, EventPaymentSucceeded, ev.Kind)
	assert.Equal(t, "cs_test_1", ev.SessionID)
	assert.Equal(t, "pi_test_1", ev.TransactionID)
	assert.Equal(t, "pi_test_1", ev.AuthorizationID)
	assert.Equal(t, "complete", ev.Status)
}

func TestParseWebhookEventFlatShape(t *testing.T) {
	data := []byte(`{"id":"cs_test_2","payment_intent":"pi_test_2","status":"expired"}`)

	ev, err := ParseWebhookEvent("checkout.session.expired", data)
	assert.Nil(t, err)
	assert.Equal(t, EventSessionExpired, ev.Kind)
	assert.Equal(t, "cs_test_2", ev.SessionID)
	assert.Equal(t, "pi_test_2", ev.TransactionID)
	assert.Equal(t, "expired", ev.Status)
}

func TestParseWebhookEventAuthorizationFallback(t *testing.T) {
	// No payment_intent: the session identifier doubles as the
	// authorization identifier.
	data := []byte(`{"object":{"id":"cs_test_3","status":"complete"}}`)

	ev, err := ParseWebhookEvent("payment_intent.amount_capturable_updated", data)
	assert.Nil(t, err)
	assert.Equal(t, EventAuthorizationSucceeded, ev.Kind)
	assert.Equal(t, "cs_test_3", ev.SessionID)
	assert.Equal(t, "cs_test_3", ev.AuthorizationID)
	assert.Empty(t, ev.TransactionID)
}

func TestParseWebhookEventUnknownKind(t *testing.T) {
	// Unrecognized types parse without error even when the payload is empty;
	// the endpoint acknowledges them without touching state.
	ev, err := ParseWebhookEvent("invoice.finalized", []byte(`{}`))
	assert.Nil(t, err)
	assert.Equal(t, EventUnknown, ev.Kind)
	assert.Equal(t, "invoice.finalized", ev.Type)
}

func TestParseWebhookEventUnresolvable(t *testing.T) {
	_, err := ParseWebhookEvent("checkout.session.completed", []byte(`{"object":{"status":"complete"}}`))
	assert.ErrorIs(t, err, ErrUnresolvableEvent)
}

func TestParseWebhookEventIgnoresNonStringIdentifiers(t *testing.T) {
	data := []byte(`{"object":{"id":12345,"payment_intent":"pi_test_4"}}`)

	ev, err := ParseWebhookEvent("checkout.session.completed", data)
	assert.Nil(t, err)
	assert.Empty(t, ev.SessionID)
	assert.Equal(t, "pi_test_4", ev.TransactionID)
}
