package server

import (
	"log"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"FearGreed/internal/metrics"
)

func (s *Server) registerRoutes(httpMetrics *metrics.HTTPMetrics) {
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	if httpMetrics != nil {
		s.echo.Use(httpMetrics.Middleware())
	}

	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/health", s.handleHealth)

	s.echo.GET("/fear-greed-history", s.handleHistory)
	s.echo.GET("/fear-greed-latest", s.handleLatest)
	s.echo.GET("/fear-greed/chart.png", s.handleChart)
	s.echo.GET("/fear-greed/gauge.png", s.handleGauge)

	if s.registry != nil {
		s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
	}
}

func setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("[WARN] %s %s status=%d latency=%s request_id=%s error=%v",
					v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			log.Printf("[INFO] %s %s status=%d latency=%s request_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	})
}
