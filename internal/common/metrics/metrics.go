// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "portal_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method"},
	)

	AssistantRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_assistant_requests_total",
			Help: "Total number of assistant requests by outcome",
		},
		[]string{"operation", "outcome"},
	)

	AssistantLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "portal_assistant_latency_seconds",
			Help: "Latency of assistant completions in seconds",
		},
		[]string{"operation"},
	)

	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_applications_submitted_total",
			Help: "Total number of application submissions by result",
		},
		[]string{"result"},
	)

	DraftOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_draft_operations_total",
			Help: "Total number of draft save and clear operations",
		},
		[]string{"operation"},
	)
)
