package application

import (
	"log/slog"
	"time"

	"github.com/hamelyn/checkout-gateway/internal/domain"
	"github.com/hamelyn/checkout-gateway/internal/ports"
)

type Config struct {
	DefaultProductName string
	DefaultImageURL    string
	DefaultCancelURL   string
	SuccessURL         string
	ListDefaultLimit   int
	ListMaxLimit       int
	EventDedupTTL      time.Duration
}

type Dependencies struct {
	Config   Config
	Catalog  *domain.Catalog
	Provider ports.CheckoutProvider
	Verifier ports.WebhookVerifier
	Dedup    ports.EventDedupStore
	Logger   *slog.Logger
}

type StatusOutput struct {
	CatalogSize int
}

type CreateCheckoutInput struct {
	ProductID string
}

type CheckoutOutput struct {
	SessionID   string
	CheckoutURL string
}

type WebhookOutput struct {
	EventID   string
	EventType string
	SessionID string
	Duplicate bool
}
