// Package metricsx holds the Prometheus instruments shared by both
// services and the middleware that feeds the HTTP ones.
package metricsx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custdesk_login_attempts_total",
		Help: "Total number of login attempts",
	}, []string{"outcome"})

	TokenValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custdesk_token_validations_total",
		Help: "Total number of token validations",
	}, []string{"outcome"})

	CacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custdesk_cache_ops_total",
		Help: "Cache operations by result",
	}, []string{"purpose", "result"})

	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custdesk_gate_decisions_total",
		Help: "Authorization gate decisions",
	}, []string{"decision"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "custdesk_http_request_duration_seconds",
		Help:    "Time spent serving HTTP requests",
		Buckets: prometheus.ExponentialBuckets(0.001, 2.0, 12), // 1ms to ~4s
	}, []string{"service", "method", "status"})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request duration and status for every request on
// the wrapped handler.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			HTTPDuration.WithLabelValues(
				service,
				r.Method,
				strconv.Itoa(sw.status),
			).Observe(time.Since(start).Seconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}
