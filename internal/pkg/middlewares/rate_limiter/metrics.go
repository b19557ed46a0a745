package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RateLimitExceededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "grubdash_rate_limit_exceeded_total",
		Help: "Total number of orders API requests rejected by the rate limiter",
	},
	[]string{"method", "route"},
)
