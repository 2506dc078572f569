package partnerships

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	partnershipsAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "booking",
		Subsystem: "partnerships",
		Name:      "accepted_total",
		Help:      "Partnership proposals accepted",
	})

	discountRateGranted = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "booking",
		Subsystem: "partnerships",
		Name:      "discount_rate_percent",
		Help:      "Discount rate granted on accepted partnerships",
		Buckets:   []float64{10, 15, 20, 25, 30, 35, 40},
	})
)
