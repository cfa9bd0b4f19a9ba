// Package server exposes the sentiment history over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"FearGreed/internal/metrics"
	"FearGreed/internal/model"
	"FearGreed/internal/render"
)

// HistoryService is the core the handlers pass through to.
type HistoryService interface {
	FetchHistory(ctx context.Context, limitDays int) ([]model.HistoryPoint, error)
	Latest(ctx context.Context) (model.HistoryPoint, error)
}

// Options holds the server's listen address and the days query bounds.
type Options struct {
	Addr        string
	DefaultDays int
	MaxDays     int
	ChartDays   int
}

type Server struct {
	echo     *echo.Echo
	opts     Options
	history  HistoryService
	renderer *render.Renderer
	registry *prometheus.Registry
}

// NewServer wires routes and middleware. A nil registry disables /metrics.
func NewServer(opts Options, history HistoryService, rdr *render.Renderer, reg *prometheus.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		opts:     opts,
		history:  history,
		renderer: rdr,
		registry: reg,
	}
	e.HTTPErrorHandler = s.handleHTTPError

	var httpMetrics *metrics.HTTPMetrics
	if reg != nil {
		httpMetrics = metrics.NewHTTPMetrics(reg, errorStatus, "/metrics", "/health")
	}
	s.registerRoutes(httpMetrics)
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Start() error {
	log.Printf("[INFO] starting server on %s", s.opts.Addr)
	if err := s.echo.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
