// metrics.go
// ----------
// Optional Prometheus instrumentation for the request path. A Bridge without
// a collector records nothing; all call sites are nil-guarded. Observed
// rate-limit usage is exported as gauges keyed by the lower-cased limit key.
package binancebridge

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle.
// It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimitUsage  *prometheus.GaugeVec
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "binancebridge_requests_total",
				Help: "Total number of API requests executed",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "binancebridge_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		rateLimitUsage: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "binancebridge_rate_limit_usage",
				Help: "Rate-limit usage counters observed in response headers",
			},
			[]string{"key"},
		),
	}
}

// RecordRequest records one completed (or failed) request. A status code of
// zero means no response was received.
func (m *MetricsCollector) RecordRequest(method, endpoint string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// RecordRateLimitUsage records a usage counter harvested from response
// headers.
func (m *MetricsCollector) RecordRateLimitUsage(key string, value int) {
	m.rateLimitUsage.WithLabelValues(key).Set(float64(value))
}
