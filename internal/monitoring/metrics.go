package monitoring

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector manages Prometheus metrics for a service
type MetricsCollector struct {
	serviceName string
	registry    *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	activeConnections   prometheus.Gauge

	postsGenerated *prometheus.CounterVec
	postsPublished prometheus.Counter
}

// NewMetricsCollector creates a collector backed by its own registry
func NewMetricsCollector(serviceName string) *MetricsCollector {
	// Prometheus names cannot contain hyphens
	sanitizedServiceName := strings.ReplaceAll(serviceName, "-", "_")

	mc := &MetricsCollector{
		serviceName: sanitizedServiceName,
		registry:    prometheus.NewRegistry(),
	}

	mc.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	mc.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    mc.serviceName + "_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	mc.activeConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: mc.serviceName + "_active_connections",
			Help: "Number of active connections",
		},
	)

	mc.postsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_posts_generated_total",
			Help: "Posts produced by the content generator",
		},
		[]string{"platform", "tone"},
	)

	mc.postsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_posts_published_total",
			Help: "Scheduled posts moved to published",
		},
	)

	mc.registry.MustRegister(
		mc.httpRequestsTotal,
		mc.httpRequestDuration,
		mc.activeConnections,
		mc.postsGenerated,
		mc.postsPublished,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return mc
}

// MetricsMiddleware records request counts and latency keyed by the matched chi route
func (mc *MetricsCollector) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		mc.activeConnections.Inc()
		defer mc.activeConnections.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		endpoint := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		mc.httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
		mc.httpRequestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func (mc *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
}

// PostGenerated counts one generated post
func (mc *MetricsCollector) PostGenerated(platform, tone string) {
	mc.postsGenerated.WithLabelValues(platform, strings.ToLower(tone)).Inc()
}

func (mc *MetricsCollector) PostsPublished(count int) {
	mc.postsPublished.Add(float64(count))
}
