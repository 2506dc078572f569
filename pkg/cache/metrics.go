package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result",
	},
	[]string{"result"},
)
