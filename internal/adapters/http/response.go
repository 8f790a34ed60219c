package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hamelyn/checkout-gateway/internal/contracts"
	"github.com/hamelyn/checkout-gateway/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, contracts.SuccessResponse{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, contracts.ErrorResponse{Status: "error", Error: contracts.ErrorPayload{Code: code, Message: message, RequestID: requestID}})
}

func mapDomainError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusUnprocessableEntity, "invalid_price"
	case errors.Is(err, domain.ErrWebhookSignature):
		return http.StatusBadRequest, "invalid_signature"
	case errors.Is(err, domain.ErrPaymentProvider):
		return http.StatusBadGateway, "payment_provider_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
