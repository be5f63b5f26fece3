package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CandyOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "candies", Name: "operations_total", Help: "Number of candy operations by operation and result."},
		[]string{"op", "result"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "candies", Name: "http_requests_total", Help: "Number of handled HTTP requests."},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "candies", Name: "http_request_duration_seconds", Help: "HTTP request latency.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "candies", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "candies", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(CandyOperations)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPRequestDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
