// Package metrics provides Prometheus metrics collection for the proposal service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuoteComputationsTotal tracks quantitative quote computations by outcome.
	QuoteComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_computations_total",
			Help: "Total number of quantitative quote computations",
		},
		[]string{"status"},
	)

	// QuoteComputationDuration tracks quote computation duration.
	QuoteComputationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_computation_duration_seconds",
			Help:    "Quantitative quote computation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	// QuoteCacheResults tracks orchestrator fingerprint cache outcomes.
	QuoteCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_cache_results_total",
			Help: "Fingerprint cache outcomes for quote requests",
		},
		[]string{"result"},
	)

	// CatalogLookupsTotal tracks catalog product lookups by outcome.
	CatalogLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_lookups_total",
			Help: "Total number of catalog product lookups",
		},
		[]string{"status"},
	)

	// CompositionOperationsTotal tracks composition aggregator operations.
	CompositionOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "composition_operations_total",
			Help: "Total number of composition aggregator operations",
		},
		[]string{"operation", "status"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordQuoteComputation records metrics for one quote computation.
func RecordQuoteComputation(duration time.Duration, status string) {
	QuoteComputationDuration.Observe(duration.Seconds())
	QuoteComputationsTotal.WithLabelValues(status).Inc()
}

// RecordQuoteCacheResult records a fingerprint cache outcome (hit, miss, shared).
func RecordQuoteCacheResult(result string) {
	QuoteCacheResults.WithLabelValues(result).Inc()
}

// RecordCatalogLookup records a catalog lookup outcome.
func RecordCatalogLookup(status string) {
	CatalogLookupsTotal.WithLabelValues(status).Inc()
}

// RecordCompositionOperation records a composition aggregator operation.
func RecordCompositionOperation(operation, status string) {
	CompositionOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}
