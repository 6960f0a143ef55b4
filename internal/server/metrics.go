package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_uploads_total",
		Help: "Total number of CSV uploads by outcome",
	}, []string{"status"})

	rowsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "content_rows_ingested_total",
		Help: "Total number of content rows committed",
	})

	languagesRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "content_languages_registered_total",
		Help: "Total number of languages added to the registry",
	})

	uploadDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "content_upload_duration_seconds",
		Help:    "Duration of committed uploads in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_errors_total",
		Help: "Total number of failed requests by error code",
	}, []string{"code"})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(uploadsTotal)
	prometheus.MustRegister(rowsIngestedTotal)
	prometheus.MustRegister(languagesRegisteredTotal)
	prometheus.MustRegister(uploadDurationSeconds)
	prometheus.MustRegister(errorsTotal)
}

// RecordUpload records the outcome of one upload
func RecordUpload(status string, rows, newLanguages int, duration time.Duration) {
	uploadsTotal.WithLabelValues(status).Inc()
	if status != "success" {
		return
	}
	rowsIngestedTotal.Add(float64(rows))
	languagesRegisteredTotal.Add(float64(newLanguages))
	uploadDurationSeconds.Observe(duration.Seconds())
}

// RecordError records a failed request by its error code
func RecordError(code string) {
	errorsTotal.WithLabelValues(code).Inc()
}

// instrument records request counts and latency per route pattern
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
