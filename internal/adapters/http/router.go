package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/hamelyn/checkout-gateway/internal/application"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func NewRouter(handler *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	r.Use(loggingMiddleware)

	r.Get("/", handler.status)
	r.Get("/healthz", handler.status)
	r.Get("/productos", handler.listProducts)
	r.Post("/create-checkout-session", handler.createCheckout)
	r.Post("/checkout/{product_id}", handler.createCheckoutByPath)
	r.Post("/webhook", handler.webhook)

	return r
}
