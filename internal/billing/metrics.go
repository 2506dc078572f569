package billing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Subsystem: "billing",
		Name:      "fees_created_total",
		Help:      "Platform fees recorded against providers",
	}, []string{"service_type"})

	feeConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "booking",
		Subsystem: "billing",
		Name:      "fee_conflicts_total",
		Help:      "Fee creations rejected because the booking already has a fee",
	})

	paymentsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Subsystem: "billing",
		Name:      "payments_recorded_total",
		Help:      "Settled payments recorded",
	}, []string{"service_type"})
)
