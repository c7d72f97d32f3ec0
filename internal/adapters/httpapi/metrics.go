package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the request-level Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calendario_http_requests_total",
		Help: "HTTP requests served, by method, path and status.",
	}, []string{"method", "path", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calendario_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	registry.MustRegister(requests, duration)
	return &Metrics{registry: registry, requests: requests, duration: duration}
}

// Handler exposes the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument records counts and latency for every request.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := routeLabel(r.URL.Path)
		m.requests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routeLabel collapses per-record paths so label cardinality stays bounded.
func routeLabel(path string) string {
	switch {
	case path == "/events" || path == "/events.ics" || path == "/evento-estado" ||
		path == "/auth/login" || path == "/auth/refresh" || path == "/users" ||
		path == "/health" || path == "/metrics":
		return path
	case len(path) > len("/events/") && path[:len("/events/")] == "/events/":
		return "/events/:id"
	case len(path) > len("/evento-estado/") && path[:len("/evento-estado/")] == "/evento-estado/":
		return "/evento-estado/:id"
	case len(path) > len("/uploads/") && path[:len("/uploads/")] == "/uploads/":
		return "/uploads/:file"
	default:
		return "other"
	}
}
