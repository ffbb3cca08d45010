package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	AICallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_call_latency_ms",
			Help:    "Generative AI call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"operation", "status"},
	)

	EVMRecomputeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evm_recompute_count",
			Help: "Total number of EVM snapshot recomputations",
		},
		[]string{"trigger"}, // trigger: api, event, seed
	)

	RemindersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_dispatched_count",
			Help: "Total number of reminders dispatched",
		},
		[]string{"status"}, // status: success, failed
	)

	SlowQueryCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_slow_query_count",
			Help: "Total number of queries exceeding the slow threshold",
		},
		[]string{"command"},
	)

	APIKeyAuthCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_key_auth_count",
			Help: "Total number of API key authentication attempts",
		},
		[]string{"outcome"}, // outcome: ok, invalid, forbidden
	)
)

// RecordHTTPRequestDuration records an HTTP request latency observation.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records a DB query latency observation.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordMQConsumeLatency records how long a consumer handler took.
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// RecordAICallLatency records a generative AI call latency observation.
func RecordAICallLatency(operation, status string, duration time.Duration) {
	AICallLatency.WithLabelValues(operation, status).Observe(float64(duration.Milliseconds()))
}

// IncrementEVMRecompute counts one EVM snapshot recomputation.
func IncrementEVMRecompute(trigger string) {
	EVMRecomputeCount.WithLabelValues(trigger).Inc()
}

// IncrementRemindersDispatched counts one reminder dispatch attempt.
func IncrementRemindersDispatched(status string) {
	RemindersDispatched.WithLabelValues(status).Inc()
}

// IncrementSlowQuery counts one slow query observation.
func IncrementSlowQuery(command string) {
	SlowQueryCount.WithLabelValues(command).Inc()
}

// IncrementAPIKeyAuth counts one API key authentication attempt.
func IncrementAPIKeyAuth(outcome string) {
	APIKeyAuthCount.WithLabelValues(outcome).Inc()
}
