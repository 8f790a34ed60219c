package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hamelyn/checkout-gateway/internal/domain"
	"github.com/hamelyn/checkout-gateway/internal/ports"
)

type Service struct {
	cfg      Config
	catalog  *domain.Catalog
	provider ports.CheckoutProvider
	verifier ports.WebhookVerifier
	dedup    ports.EventDedupStore
	logger   *slog.Logger
}

func NewService(deps Dependencies) *Service {
	s := &Service{
		cfg:      deps.Config,
		catalog:  deps.Catalog,
		provider: deps.Provider,
		verifier: deps.Verifier,
		dedup:    deps.Dedup,
		logger:   deps.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.cfg.ListDefaultLimit <= 0 {
		s.cfg.ListDefaultLimit = 10
	}
	if s.cfg.ListMaxLimit <= 0 {
		s.cfg.ListMaxLimit = 100
	}
	if s.cfg.EventDedupTTL == 0 {
		s.cfg.EventDedupTTL = 7 * 24 * time.Hour
	}
	return s
}

func (s *Service) Status(_ context.Context) StatusOutput {
	return StatusOutput{CatalogSize: s.catalog.Size()}
}

// ListProducts returns the first records in load order. A limit of 0
// applies the configured default; the configured maximum caps it.
func (s *Service) ListProducts(_ context.Context, limit int) []domain.ProductRecord {
	if limit <= 0 {
		limit = s.cfg.ListDefaultLimit
	}
	if limit > s.cfg.ListMaxLimit {
		limit = s.cfg.ListMaxLimit
	}
	return s.catalog.First(limit)
}

func (s *Service) GetProduct(_ context.Context, id string) (domain.ProductRecord, error) {
	return s.catalog.Lookup(id)
}

// CreateCheckout resolves the product, builds the session parameters
// and opens a hosted checkout session with the provider. Lookup and
// validation failures never reach the provider.
func (s *Service) CreateCheckout(ctx context.Context, input CreateCheckoutInput) (CheckoutOutput, error) {
	record, err := s.catalog.Lookup(input.ProductID)
	if err != nil {
		return CheckoutOutput{}, err
	}
	spec, err := s.buildSessionSpec(record)
	if err != nil {
		return CheckoutOutput{}, err
	}
	session, err := s.provider.CreateSession(ctx, spec)
	if err != nil {
		return CheckoutOutput{}, err
	}
	s.logger.InfoContext(ctx, "checkout session created",
		"operation", "create_checkout",
		"product_id", record.ID,
		"session_id", session.ID,
		"amount_minor_units", spec.UnitAmount,
		"currency", spec.Currency,
	)
	return CheckoutOutput{SessionID: session.ID, CheckoutURL: session.URL}, nil
}

// buildSessionSpec is pure data transformation; every optional field
// falls back to a configured default rather than passing through a
// broken value.
func (s *Service) buildSessionSpec(record domain.ProductRecord) (ports.SessionSpec, error) {
	if !record.PriceValid || record.PriceMinorUnits <= 0 {
		return ports.SessionSpec{}, fmt.Errorf("%w: product %q has no positive price (raw %q)",
			domain.ErrInvalidPrice, record.ID, record.RawPrice)
	}

	name := strings.TrimSpace(record.Title)
	if name == "" {
		name = s.cfg.DefaultProductName
	}

	imageURL := strings.TrimSpace(record.ImageURL)
	if !strings.HasPrefix(imageURL, "http") {
		imageURL = s.cfg.DefaultImageURL
	}

	cancelURL := strings.TrimSpace(record.Link)
	if cancelURL == "" {
		cancelURL = s.cfg.DefaultCancelURL
	}

	return ports.SessionSpec{
		ProductID:  record.ID,
		Name:       name,
		ImageURL:   imageURL,
		Currency:   record.Currency,
		UnitAmount: record.PriceMinorUnits,
		Quantity:   1,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  cancelURL,
		Metadata: map[string]string{
			"product_id":    record.ID,
			"product_title": name,
		},
	}, nil
}

// HandleProviderEvent verifies the delivery signature before anything
// else, then deduplicates by event id so provider redeliveries are
// acknowledged without reprocessing.
func (s *Service) HandleProviderEvent(ctx context.Context, payload []byte, signature string) (WebhookOutput, error) {
	event, err := s.verifier.Verify(payload, signature)
	if err != nil {
		return WebhookOutput{}, err
	}

	out := WebhookOutput{EventID: event.EventID, EventType: event.EventType, SessionID: event.ObjectID}
	if s.dedup != nil && event.EventID != "" {
		seen, err := s.dedup.Seen(ctx, event.EventID, s.cfg.EventDedupTTL)
		if err != nil {
			return WebhookOutput{}, err
		}
		if seen {
			out.Duplicate = true
			return out, nil
		}
	}

	switch event.EventType {
	case "checkout.session.completed":
		s.logger.InfoContext(ctx, "payment completed",
			"operation", "webhook_event", "event_id", event.EventID, "session_id", event.ObjectID)
	case "checkout.session.expired":
		s.logger.WarnContext(ctx, "checkout session expired",
			"operation", "webhook_event", "event_id", event.EventID, "session_id", event.ObjectID)
	default:
		s.logger.DebugContext(ctx, "provider event received",
			"operation", "webhook_event", "event_id", event.EventID, "event_type", event.EventType)
	}
	return out, nil
}
