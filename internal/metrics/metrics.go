// Package metrics exposes prometheus collectors and the middleware that
// feeds the request-level ones.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkgate_http_requests_total",
		Help: "HTTP requests processed, by method and status.",
	}, []string{"method", "status"})

	RequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "linkgate_http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linkgate_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	RelayedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkgate_relayed_bytes_total",
		Help: "Bytes piped from upstream sources to clients.",
	})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware records per-request counters. Paths are not used as labels;
// slugs are unbounded and would blow up cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RequestsInFlight.Inc()
		defer RequestsInFlight.Dec()

		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(wrapped, r)

		RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(wrapped.status)).Inc()
		RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
