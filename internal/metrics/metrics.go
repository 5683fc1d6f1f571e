package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backoffice_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_transitions_total",
		Help: "Total number of transaction status transitions",
	}, []string{"from", "to"})

	ConfirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_confirmations_total",
		Help: "Total number of payout confirmation attempts",
	}, []string{"phase", "outcome"})

	MessagesConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_messages_consumed_total",
		Help: "Total number of consumed queue messages",
	}, []string{"queue", "outcome"})
)

func RecordTransition(from, to string) {
	TransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordConfirmation(phase, outcome string) {
	ConfirmationsTotal.WithLabelValues(phase, outcome).Inc()
}

func RecordMessage(queue, outcome string) {
	MessagesConsumedTotal.WithLabelValues(queue, outcome).Inc()
}
