package types

import (
	"errors"

	"github.com/tidwall/gjson"
)

// WebhookEventKind is the normalized event vocabulary the payment service
// understands. Gateway-native event names are folded into it before any
// business logic runs.
type WebhookEventKind string

const (
	EventPaymentSucceeded       WebhookEventKind = "payment.succeeded"
	EventPaymentFailed          WebhookEventKind = "payment.failed"
	EventSessionExpired         WebhookEventKind = "session.expired"
	EventAuthorizationSucceeded WebhookEventKind = "authorization.succeeded"
	EventAuthorizationExpired   WebhookEventKind = "authorization.expired"
	EventCaptureSucceeded       WebhookEventKind = "capture.succeeded"
	EventUnknown                WebhookEventKind = ""
)

var eventKindAliases = map[string]WebhookEventKind{
	string(EventPaymentSucceeded):              EventPaymentSucceeded,
	"checkout.session.completed":               EventPaymentSucceeded,
	"checkout.session.async_payment_succeeded": EventPaymentSucceeded,
	string(EventPaymentFailed):                 EventPaymentFailed,
	"payment_intent.payment_failed":            EventPaymentFailed,
	"checkout.session.async_payment_failed":    EventPaymentFailed,
	string(EventSessionExpired):                EventSessionExpired,
	"checkout.session.expired":                 EventSessionExpired,
	string(EventAuthorizationSucceeded):        EventAuthorizationSucceeded,
	"payment_intent.amount_capturable_updated": EventAuthorizationSucceeded,
	string(EventAuthorizationExpired):          EventAuthorizationExpired,
	"payment_intent.canceled":                  EventAuthorizationExpired,
	string(EventCaptureSucceeded):              EventCaptureSucceeded,
	"payment_intent.succeeded":                 EventCaptureSucceeded,
}

// NormalizeEventKind maps a raw event type string, gateway-native or
// canonical, onto the normalized vocabulary. Unrecognized types map to
// EventUnknown; the webhook endpoint acknowledges those without touching
// state.
func NormalizeEventKind(eventType string) WebhookEventKind {
	return eventKindAliases[eventType]
}

// WebhookEvent is the single normalized value carrying everything the
// reconciliation flow needs from an incoming gateway notification.
type WebhookEvent struct {
	Type            string
	Kind            WebhookEventKind
	SessionID       string
	TransactionID   string
	AuthorizationID string
	Status          string
}

var ErrUnresolvableEvent = errors.New("webhook payload carries no session or transaction identifier")

func firstString(data []byte, paths ...string) string {
	for _, p := range paths {
		if v := gjson.GetBytes(data, p); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

// ParseWebhookEvent normalizes a raw event payload. The gateway has shipped
// two payload shapes over time: a legacy flat object (`id`, `payment_intent`,
// `status` at the top level) and the current nested one (`object.id`,
// `object.payment_intent`, `object.status`). Both resolve to the same logical
// identifiers here so nothing downstream ever probes field presence.
func ParseWebhookEvent(eventType string, data []byte) (*WebhookEvent, error) {
	ev := &WebhookEvent{
		Type:          eventType,
		Kind:          NormalizeEventKind(eventType),
		SessionID:     firstString(data, "object.id", "id", "session_id"),
		TransactionID: firstString(data, "object.payment_intent", "payment_intent", "transaction_id"),
		Status:        firstString(data, "object.status", "status"),
	}
	ev.AuthorizationID = firstString(data, "object.payment_intent", "payment_intent", "authorization_id")
	if ev.AuthorizationID == "" {
		ev.AuthorizationID = ev.SessionID
	}
	if ev.Kind == EventUnknown {
		return ev, nil
	}
	if ev.SessionID == "" && ev.TransactionID == "" {
		return nil, ErrUnresolvableEvent
	}
	return ev, nil
}
