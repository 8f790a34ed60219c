package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hamelyn/checkout-gateway/internal/application"
	"github.com/hamelyn/checkout-gateway/internal/contracts"
	"github.com/hamelyn/checkout-gateway/internal/domain"
)

const maxWebhookPayloadBytes = 1 << 20

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	out := h.service.Status(r.Context())
	writeSuccess(w, http.StatusOK, "checkout gateway is alive", contracts.StatusResponse{
		Message:     "ok",
		CatalogSize: out.CatalogSize,
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid_input", "limit must be a non-negative integer", requestIDFromContext(r.Context()))
			return
		}
		limit = parsed
	}
	records := h.service.ListProducts(r.Context(), limit)
	products := make([]contracts.ProductDTO, 0, len(records))
	for _, rec := range records {
		products = append(products, toProductDTO(rec))
	}
	writeSuccess(w, http.StatusOK, "", products)
}

func (h *Handler) createCheckout(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	h.startCheckout(w, r, req.ID)
}

func (h *Handler) createCheckoutByPath(w http.ResponseWriter, r *http.Request) {
	h.startCheckout(w, r, chi.URLParam(r, "product_id"))
}

func (h *Handler) startCheckout(w http.ResponseWriter, r *http.Request, productID string) {
	out, err := h.service.CreateCheckout(r.Context(), application.CreateCheckoutInput{ProductID: productID})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", contracts.CheckoutResponse{
		CheckoutURL: out.CheckoutURL,
		SessionID:   out.SessionID,
	})
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookPayloadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "unable to read webhook payload", requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.HandleProviderEvent(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", contracts.WebhookResponse{
		Received:  true,
		EventID:   out.EventID,
		EventType: out.EventType,
		SessionID: out.SessionID,
		Duplicate: out.Duplicate,
	})
}

func toProductDTO(rec domain.ProductRecord) contracts.ProductDTO {
	return contracts.ProductDTO{
		ID:              rec.ID,
		Title:           rec.Title,
		RawPrice:        rec.RawPrice,
		PriceMinorUnits: rec.PriceMinorUnits,
		Currency:        rec.Currency,
		PriceValid:      rec.PriceValid,
		Link:            rec.Link,
		ImageURL:        rec.ImageURL,
	}
}
