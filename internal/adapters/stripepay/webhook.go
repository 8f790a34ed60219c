package stripepay

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/hamelyn/checkout-gateway/internal/domain"
	"github.com/hamelyn/checkout-gateway/internal/ports"
)

type Verifier struct {
	signingSecret string
}

func NewVerifier(signingSecret string) *Verifier {
	return &Verifier{signingSecret: signingSecret}
}

// Verify checks the Stripe-Signature header against the signing secret
// before the payload is trusted in any way. An unset secret rejects
// every delivery, since verification can never pass.
func (v *Verifier) Verify(payload []byte, signature string) (ports.WebhookEvent, error) {
	if v.signingSecret == "" {
		return ports.WebhookEvent{}, fmt.Errorf("%w: no signing secret configured", domain.ErrWebhookSignature)
	}
	event, err := webhook.ConstructEvent(payload, signature, v.signingSecret)
	if err != nil {
		return ports.WebhookEvent{}, fmt.Errorf("%w: %v", domain.ErrWebhookSignature, err)
	}

	out := ports.WebhookEvent{EventID: event.ID, EventType: string(event.Type)}
	var object struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Data.Raw, &object); err == nil {
		out.ObjectID = object.ID
	}
	return out, nil
}
