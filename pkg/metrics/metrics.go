package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// LLM call latency (milliseconds)
	LLMCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_latency_ms",
			Help:    "LLM chat completion call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"purpose", "status"},
	)

	// Classification counter
	EmailsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_classified_total",
			Help: "Total number of emails classified",
		},
		[]string{"category", "service_used"},
	)

	// Result cache lookups
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classification_cache_lookups_total",
			Help: "Total number of classification cache lookups",
		},
		[]string{"result"}, // result: hit, miss, error
	)
)

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordLLMCallLatency records a model call by purpose (classify, respond).
func RecordLLMCallLatency(purpose, status string, duration time.Duration) {
	LLMCallLatency.WithLabelValues(purpose, status).Observe(float64(duration.Milliseconds()))
}

// IncrementEmailsClassified counts a finished classification.
func IncrementEmailsClassified(category, serviceUsed string) {
	EmailsClassified.WithLabelValues(category, serviceUsed).Inc()
}

// IncrementCacheLookup counts a cache lookup outcome.
func IncrementCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}
