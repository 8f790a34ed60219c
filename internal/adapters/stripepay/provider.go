// Package stripepay implements the checkout provider and webhook
// verifier ports on the Stripe API.
package stripepay

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/hamelyn/checkout-gateway/internal/domain"
	"github.com/hamelyn/checkout-gateway/internal/ports"
)

type Provider struct {
	api *client.API
}

func NewProvider(secretKey string) *Provider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Provider{api: api}
}

// CreateSession opens a hosted checkout session for a single unit of
// the product. Failures are surfaced as ErrPaymentProvider and never
// retried here, so a session is never silently duplicated.
func (p *Provider) CreateSession(ctx context.Context, spec ports.SessionSpec) (ports.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(spec.Quantity),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(spec.Currency)),
					UnitAmount: stripe.Int64(spec.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:     stripe.String(spec.Name),
						Images:   stripe.StringSlice([]string{spec.ImageURL}),
						Metadata: spec.Metadata,
					},
				},
			},
		},
		SuccessURL: stripe.String(spec.SuccessURL),
		CancelURL:  stripe.String(spec.CancelURL),
		Metadata:   spec.Metadata,
	}

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return ports.CheckoutSession{}, fmt.Errorf("%w: create checkout session: %v", domain.ErrPaymentProvider, err)
	}
	return ports.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}
