package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	shippingQuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_quotes_total",
		Help: "Shipping quotes computed, by zone and outcome",
	}, []string{"zone", "outcome"})

	shippingOptionsUnconfigured = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_quote_options_unconfigured_total",
		Help: "Quote options skipped because no zone rate exists for the weight slab",
	}, []string{"zone"})

	orderTotalsCalculated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_totals_calculated_total",
		Help: "Order charge and tax evaluations, by payment method",
	}, []string{"payment_method"})
)
