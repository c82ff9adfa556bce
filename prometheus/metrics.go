package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "soporte_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counters
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "soporte_register_total",
			Help: "Total number of user registrations",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soporte_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soporte_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "login_failure", "invalid_token", "db_error" etc.
	)

	// Inventory operation counter
	InventoryOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soporte_inventory_operations_total",
			Help: "Total number of inventory operations",
		},
		[]string{"operation"}, // operation can be "list", "create"
	)

	// Workflow operation counter
	WorkflowOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soporte_workflow_operations_total",
			Help: "Total number of request/service workflow operations",
		},
		[]string{"operation"}, // operation can be "register", "assign", "detail", "list"
	)

	// Outbound notification counter
	EmailCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soporte_emails_total",
			Help: "Total number of outbound notification emails",
		},
		[]string{"result"}, // result is "sent" or "failed"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soporte_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soporte_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update"
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(InventoryOperationCounter)
	prometheus.MustRegister(WorkflowOperationCounter)
	prometheus.MustRegister(EmailCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			// Record metrics
			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordInventoryOperation records an inventory operation by type
func RecordInventoryOperation(operation string) {
	InventoryOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordWorkflowOperation records a workflow operation by type
func RecordWorkflowOperation(operation string) {
	WorkflowOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordEmailResult records the outcome of an outbound notification
func RecordEmailResult(result string) {
	EmailCounter.With(prometheus.Labels{"result": result}).Inc()
}
