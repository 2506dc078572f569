package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "booking",
		Subsystem: "analytics",
		Name:      "financial_reports_total",
		Help:      "Financial reports built",
	})

	billingEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Subsystem: "analytics",
		Name:      "billing_events_total",
		Help:      "Billing events consumed, by event type",
	}, []string{"type"})

	feeAmountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Subsystem: "analytics",
		Name:      "platform_fee_amount_total",
		Help:      "Platform fee amounts seen on billing events, by state",
	}, []string{"state"})

	settledRevenueTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Subsystem: "analytics",
		Name:      "settled_revenue_total",
		Help:      "Settled payment amounts, by service type",
	}, []string{"service_type"})
)
