// Package metrics collects and exposes Prometheus metrics for the API server
// and the notification worker.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request and pipeline metrics against a registry
type Collector struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   prometheus.Histogram
	jobsEnqueued   prometheus.Counter
	jobsProcessed  prometheus.Counter
	jobsFailed     prometheus.Counter
	tokensIssued   prometheus.Counter
	authRejections *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "volunteer_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status_code"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "volunteer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		jobsEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "volunteer_jobs_enqueued_total",
			Help: "Signup confirmation jobs enqueued",
		}),
		jobsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "volunteer_jobs_processed_total",
			Help: "Signup confirmation jobs processed by the worker",
		}),
		jobsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "volunteer_jobs_failed_total",
			Help: "Signup confirmation jobs that exhausted their retries",
		}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "volunteer_tokens_issued_total",
			Help: "Bearer tokens issued",
		}),
		authRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "volunteer_auth_rejections_total",
			Help: "Authentication and authorization rejections by status code",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.jobsEnqueued,
		c.jobsProcessed,
		c.jobsFailed,
		c.tokensIssued,
		c.authRejections,
	)

	return c
}

// RecordRequest records one completed HTTP request
func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.Observe(duration.Seconds())
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		c.authRejections.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	}
}

// RecordJobEnqueued records a signup confirmation job handed to the queue
func (c *Collector) RecordJobEnqueued() {
	c.jobsEnqueued.Inc()
}

// RecordJobProcessed records a job the worker completed
func (c *Collector) RecordJobProcessed() {
	c.jobsProcessed.Inc()
}

// RecordJobFailed records a job that exhausted its retries
func (c *Collector) RecordJobFailed() {
	c.jobsFailed.Inc()
}

// RecordTokenIssued records one successful token issuance
func (c *Collector) RecordTokenIssued() {
	c.tokensIssued.Inc()
}

// Middleware records request metrics for every request passing through it
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			c.RecordRequest(r.Method, wrapped.statusCode, time.Since(start))
		})
	}
}

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (mw *metricsResponseWriter) WriteHeader(code int) {
	mw.statusCode = code
	mw.ResponseWriter.WriteHeader(code)
}

// Handler returns the HTTP handler for Prometheus scrapes
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
