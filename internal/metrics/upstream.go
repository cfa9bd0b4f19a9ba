package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"FearGreed/internal/collector"
	"FearGreed/internal/model"
)

// UpstreamMetrics tracks requests made to the index provider.
type UpstreamMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PointsFetched   prometheus.Gauge
}

// NewUpstreamMetrics creates and registers provider metrics on the given registry.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	m := &UpstreamMetrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of provider requests by outcome.",
		}, []string{"source", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of provider requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		PointsFetched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "raw_points",
			Help:      "Number of raw points in the last successful provider response.",
		}),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.PointsFetched)
	return m
}

// InstrumentedSource wraps a collector.Source and records every request.
type InstrumentedSource struct {
	Source  collector.Source
	Metrics *UpstreamMetrics
}

// Instrument wraps source with m.
func (m *UpstreamMetrics) Instrument(source collector.Source) *InstrumentedSource {
	return &InstrumentedSource{Source: source, Metrics: m}
}

func (s *InstrumentedSource) Name() string { return s.Source.Name() }

func (s *InstrumentedSource) FetchRaw(ctx context.Context) ([]model.RawPoint, error) {
	start := time.Now()
	points, err := s.Source.FetchRaw(ctx)
	s.Metrics.RequestDuration.WithLabelValues(s.Name()).Observe(time.Since(start).Seconds())
	s.Metrics.RequestsTotal.WithLabelValues(s.Name(), Outcome(err)).Inc()
	if err == nil {
		s.Metrics.PointsFetched.Set(float64(len(points)))
	}
	return points, err
}

// Outcome names the result of a provider request for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, collector.ErrUpstream):
		return "upstream_error"
	case errors.Is(err, collector.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "transport_error"
	}
}
