package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karantec/minutos-storefront/internal/service"
	"github.com/karantec/minutos-storefront/pkg/health"
	"github.com/karantec/minutos-storefront/pkg/middleware"
)

// NewRouter creates a chi router with all storefront checkout routes.
func NewRouter(
	checkoutService *service.CheckoutService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing("checkout"))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health/live", healthHandler.Liveness())
	r.Get("/health/ready", healthHandler.Readiness())
	r.Handle("/metrics", promhttp.Handler())

	// Checkout API endpoints
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(middleware.RequireIdentity)

		r.Post("/", checkoutHandler.StartCheckout)
		r.Get("/{id}", checkoutHandler.GetCheckout)
		r.Delete("/{id}", checkoutHandler.AbandonCheckout)

		r.Post("/{id}/vendors", checkoutHandler.ReloadVendors)
		r.Put("/{id}/vendor", checkoutHandler.SelectVendor)
		r.Post("/{id}/advance", checkoutHandler.Advance)

		r.Post("/{id}/addresses", checkoutHandler.ReloadAddresses)
		r.Put("/{id}/address", checkoutHandler.SetAddress)
		r.Delete("/{id}/addresses/{addressID}", checkoutHandler.DeleteAddress)

		r.Put("/{id}/payment", checkoutHandler.SetPaymentMethod)
		r.Post("/{id}/place", checkoutHandler.PlaceOrder)
		r.Post("/{id}/payment/callback", checkoutHandler.PaymentCallback)
	})

	return r
}
