// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "splitwise",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests handled.",
	}, []string{"method", "path", "status"})

	// RequestDuration observes HTTP request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "splitwise",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	// ExpensesRecorded counts expenses appended to the ledger.
	ExpensesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "splitwise",
		Name:      "expenses_recorded_total",
		Help:      "Total expenses appended to the ledger.",
	})

	// PaymentsRecorded counts settle-up payments appended to the ledger.
	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "splitwise",
		Name:      "payments_recorded_total",
		Help:      "Total settle-up payments recorded.",
	})
)
