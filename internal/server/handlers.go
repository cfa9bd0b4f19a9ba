package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Fear & Greed Index API에 오신 것을 환영합니다!",
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleHistory(c echo.Context) error {
	days, err := s.parseDays(c, s.opts.DefaultDays)
	if err != nil {
		return err
	}
	history, err := s.history.FetchHistory(c.Request().Context(), days)
	if err != nil {
		return fmt.Errorf("데이터 조회 중 오류가 발생했습니다: %w", err)
	}
	return c.JSON(http.StatusOK, history)
}

func (s *Server) handleLatest(c echo.Context) error {
	latest, err := s.history.Latest(c.Request().Context())
	if err != nil {
		return fmt.Errorf("데이터 조회 중 오류가 발생했습니다: %w", err)
	}
	return c.JSON(http.StatusOK, latest)
}

func (s *Server) handleChart(c echo.Context) error {
	days, err := s.parseDays(c, s.opts.ChartDays)
	if err != nil {
		return err
	}
	history, err := s.history.FetchHistory(c.Request().Context(), days)
	if err != nil {
		return fmt.Errorf("차트 생성 중 오류가 발생했습니다: %w", err)
	}
	var buf bytes.Buffer
	if err := s.renderer.Chart(&buf, history); err != nil {
		return fmt.Errorf("차트 생성 중 오류가 발생했습니다: %w", err)
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleGauge(c echo.Context) error {
	latest, err := s.history.Latest(c.Request().Context())
	if err != nil {
		return fmt.Errorf("계기판 생성 중 오류가 발생했습니다: %w", err)
	}
	var buf bytes.Buffer
	if err := s.renderer.Gauge(&buf, latest); err != nil {
		return fmt.Errorf("계기판 생성 중 오류가 발생했습니다: %w", err)
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// parseDays reads the days query parameter, enforcing 1..MaxDays.
func (s *Server) parseDays(c echo.Context, def int) (int, error) {
	raw := c.QueryParam("days")
	if raw == "" {
		return def, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidDays(fmt.Sprintf("days must be an integer, got %q", raw))
	}
	if days < 1 || days > s.opts.MaxDays {
		return 0, invalidDays(fmt.Sprintf("days must be between 1 and %d, got %d", s.opts.MaxDays, days))
	}
	return days, nil
}
