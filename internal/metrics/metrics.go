package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kivi_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kivi_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PaymentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kivi_payments_created_total",
			Help: "Payments recorded successfully",
		},
	)

	PaymentsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kivi_payments_rejected_total",
			Help: "Payments rejected by validation before storage",
		},
	)

	ExcessReassignments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kivi_excess_reassignments_total",
			Help: "Surplus lots reassigned to a customer",
		},
	)
)
