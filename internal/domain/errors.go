package domain

import "errors"

var (
	// ErrCatalogLoad is returned when the catalog source file cannot be
	// read or parsed. Whether it aborts startup is a bootstrap policy.
	ErrCatalogLoad = errors.New("catalog load failed")
	// ErrProductNotFound keeps a single sentinel for lookup misses so
	// adapters map it consistently to 404.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidPrice covers both unparseable raw price strings and
	// non-positive amounts at checkout time. No fallback price is ever
	// substituted for it.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrWebhookSignature rejects provider deliveries before any
	// event-type branching happens.
	ErrWebhookSignature = errors.New("webhook signature verification failed")
	// ErrPaymentProvider wraps failures of the outbound session call.
	// Never retried here; session creation must not be duplicated.
	ErrPaymentProvider = errors.New("payment provider error")
	ErrInvalidInput    = errors.New("invalid input")
)
