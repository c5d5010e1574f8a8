package payment

import "context"

// EventPaymentSucceeded is the only webhook event type acted upon.
const EventPaymentSucceeded = "payment_intent.succeeded"

// Intent is the processor handle handed back to the client for confirmation.
type Intent struct {
	ID           string `json:"payment_intent_id"`
	ClientSecret string `json:"client_secret"`
}

// WebhookEvent is a verified, normalized processor callback.
type WebhookEvent struct {
	Type     string
	IntentID string
	Metadata map[string]string
}

// Gateway is the capture-service boundary. Amounts cross it only in the
// processor's integer minor currency unit; this representation is never
// persisted.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (Intent, error)
	// Refund must be called with the transaction id stored on the order,
	// never a client-supplied one.
	Refund(ctx context.Context, transactionID string) error
	// VerifyWebhook authenticates the raw payload against the shared signing
	// secret and fails closed on any verification error.
	VerifyWebhook(payload []byte, sigHeader string) (WebhookEvent, error)
}
