package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkouts_started_total",
		Help: "Checkout sessions created",
	})

	checkoutsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkouts_completed_total",
		Help: "Checkout sessions that reached completion",
	}, []string{"payment_method"})

	ordersRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_rejected_total",
		Help: "Order submissions the backend refused",
	})

	gatewayOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_gateway_outcomes_total",
		Help: "Payment widget outcomes by kind",
	}, []string{"kind"})

	verificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_payment_verification_failures_total",
		Help: "Gateway-reported successes the backend could not verify",
	})
)
