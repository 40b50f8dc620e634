package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Database query latency in seconds
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	// Expense workflow operation count
	ExpenseOpCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expense_operation_count",
			Help: "Total number of expense workflow operations",
		},
		[]string{"operation", "outcome"}, // operation: create, update, delete, list
	)

	// Registration count
	RegistrationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_registration_count",
			Help: "Total number of registration attempts",
		},
		[]string{"outcome"}, // outcome: success, rejected, error
	)

	// Login count
	LoginCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_login_count",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)
)

// RecordHTTPRequestDuration records one served HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records one database query.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncrementExpenseOp increments the expense workflow counter.
func IncrementExpenseOp(operation, outcome string) {
	ExpenseOpCount.WithLabelValues(operation, outcome).Inc()
}

// IncrementRegistration increments the registration counter.
func IncrementRegistration(outcome string) {
	RegistrationCount.WithLabelValues(outcome).Inc()
}

// IncrementLogin increments the login counter.
func IncrementLogin(outcome string) {
	LoginCount.WithLabelValues(outcome).Inc()
}
