package ports

import "context"

// SessionSpec carries everything the hosted checkout provider needs to
// open a session. The success URL embeds the provider's session-id
// placeholder, substituted on their side.
type SessionSpec struct {
	ProductID  string
	Name       string
	ImageURL   string
	Currency   string
	UnitAmount int64
	Quantity   int64
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type CheckoutProvider interface {
	CreateSession(ctx context.Context, spec SessionSpec) (CheckoutSession, error)
}

// WebhookEvent is a provider notification that already passed
// signature verification. ObjectID is the checkout session id for
// session events.
type WebhookEvent struct {
	EventID   string
	EventType string
	ObjectID  string
}

type WebhookVerifier interface {
	Verify(payload []byte, signature string) (WebhookEvent, error)
}
