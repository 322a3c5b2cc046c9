// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the payment flows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powerbill_http_requests_total",
			Help: "HTTP requests by method, route, and status.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "powerbill_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// PaymentsRecorded counts successful bill and service payments.
	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powerbill_payments_recorded_total",
			Help: "Payments recorded, by kind (bill or service).",
		},
		[]string{"kind"},
	)
)

// Middleware returns an echo middleware that records request counts and
// latency per route. It reads the committed response status, so it must
// wrap any middleware that turns handler errors into responses.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			requestsTotal.WithLabelValues(
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
			).Inc()
			requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
