package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"FearGreed/internal/collector"
	"FearGreed/internal/render"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

const (
	CodeUpstream          = "upstream_error"
	CodeMalformedResponse = "malformed_response"
	CodeUnrecognizedDate  = "unrecognized_date_format"
	CodeInvalidDays       = "invalid_days"
	CodeNoData            = "no_data"
	CodeNotFound          = "not_found"
	CodeInternal          = "internal"
)

// apiError carries a status and code chosen by a handler.
type apiError struct {
	status int
	code   string
	msg    string
}

func (e *apiError) Error() string { return e.msg }

func invalidDays(msg string) error {
	return &apiError{status: http.StatusUnprocessableEntity, code: CodeInvalidDays, msg: msg}
}

// mapError turns a core failure into a status and code.
func mapError(err error) (int, string) {
	var apiErr *apiError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.status, apiErr.code
	case errors.Is(err, collector.ErrUpstream):
		return http.StatusBadGateway, CodeUpstream
	case errors.Is(err, collector.ErrMalformedResponse):
		return http.StatusBadGateway, CodeMalformedResponse
	case errors.Is(err, collector.ErrUnrecognizedDateFormat):
		return http.StatusBadGateway, CodeUnrecognizedDate
	case errors.Is(err, collector.ErrInvalidLimit):
		return http.StatusUnprocessableEntity, CodeInvalidDays
	case errors.Is(err, collector.ErrEmptyHistory), errors.Is(err, render.ErrNoData):
		return http.StatusBadGateway, CodeNoData
	case errors.As(err, &httpErr):
		if httpErr.Code == http.StatusNotFound {
			return httpErr.Code, CodeNotFound
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func errorStatus(err error) int {
	status, _ := mapError(err)
	return status
}

// handleHTTPError writes every handler error as an ErrorResponse.
func (s *Server) handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, code := mapError(err)

	msg := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	resp := ErrorResponse{
		Error:     msg,
		Code:      code,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if err := c.JSON(status, resp); err != nil {
		log.Printf("[ERROR] write error response: %v", err)
	}
}
