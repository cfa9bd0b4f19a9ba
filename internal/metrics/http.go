package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// StatusFunc resolves the status a handler error is written with.
type StatusFunc func(err error) int

// HTTPMetrics counts and times API requests by route and final status.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	InFlight prometheus.Gauge

	statusOf StatusFunc
	skip     map[string]bool
}

// NewHTTPMetrics registers the API request metrics on reg. statusOf maps
// handler errors to the status the error handler will write; nil falls back
// to *echo.HTTPError codes and 500. Requests to skipRoutes are not observed.
func NewHTTPMetrics(reg prometheus.Registerer, statusOf StatusFunc, skipRoutes ...string) *HTTPMetrics {
	labels := []string{"method", "route", "status_code"}
	m := &HTTPMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "API requests by route and final status.",
		}, labels),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request latency in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, labels),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "API requests currently being served.",
		}),
		statusOf: statusOf,
		skip:     make(map[string]bool, len(skipRoutes)),
	}
	for _, r := range skipRoutes {
		m.skip[r] = true
	}

	reg.MustRegister(m.Requests, m.Latency, m.InFlight)
	return m
}

// Middleware observes every request whose route is not skipped.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if m.skip[route] {
				return next(c)
			}

			m.InFlight.Inc()
			defer m.InFlight.Dec()
			start := time.Now()

			err := next(c)

			status := strconv.Itoa(m.status(c, err))
			method := c.Request().Method
			m.Requests.WithLabelValues(method, route, status).Inc()
			m.Latency.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// status returns the response status, resolving it from err when the
// handler failed before writing anything.
func (m *HTTPMetrics) status(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	if m.statusOf != nil {
		return m.statusOf(err)
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
