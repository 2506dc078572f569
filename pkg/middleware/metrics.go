package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled",
	}, []string{"service", "method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "booking",
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "method", "route"})

	httpRequestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "booking",
		Name:      "http_requests_in_flight",
		Help:      "Number of HTTP requests currently being served",
	}, []string{"service"})
)

// Metrics records Prometheus request counters and latencies per route.
func Metrics(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		inFlight := httpRequestsInFlight.WithLabelValues(serviceName)
		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(serviceName, c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(serviceName, c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
