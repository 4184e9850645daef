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

	// Authentication attempt counter
	AuthAttemptCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempt_count",
			Help: "Total number of authentication attempts",
		},
		[]string{"operation", "outcome"}, // operation: register, login, forgot_password, reset_password
	)

	// Task mutation counter
	TaskMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_mutation_count",
			Help: "Total number of task mutations",
		},
		[]string{"operation"}, // operation: create, replace, patch, delete, delete_all
	)
)

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementAuthAttempt counts an auth operation by outcome.
func IncrementAuthAttempt(operation, outcome string) {
	AuthAttemptCount.WithLabelValues(operation, outcome).Inc()
}

// IncrementTaskMutation counts a task mutation by operation.
func IncrementTaskMutation(operation string) {
	TaskMutationCount.WithLabelValues(operation).Inc()
}
