package server

import (
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FearGreed/internal/collector"
	"FearGreed/internal/metrics"
	"FearGreed/internal/model"
	"FearGreed/internal/render"
)

func newTestServer(t *testing.T, source *collector.MockSource) *Server {
	t.Helper()
	style := render.DefaultStyle()
	style.Clock = clockwork.NewFakeClockAt(time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC))
	rdr, err := render.NewRenderer(style)
	require.NoError(t, err)

	opts := Options{Addr: ":0", DefaultDays: 90, MaxDays: 365, ChartDays: 90}
	return NewServer(opts, collector.NewCollector(source, time.UTC), rdr, metrics.NewRegistry())
}

func twoPoints() *collector.MockSource {
	return &collector.MockSource{Points: []model.RawPoint{
		{X: "2024-01-01", Y: 10},
		{X: float64(1704153600000), Y: 80},
	}}
}

func do(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleHealth(t *testing.T) {
	rec := do(t, newTestServer(t, twoPoints()), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestHandleRoot(t *testing.T) {
	rec := do(t, newTestServer(t, twoPoints()), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}

func TestHandleHistory(t *testing.T) {
	srv := newTestServer(t, twoPoints())
	rec := do(t, srv, "/fear-greed-history")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"date":"2024-01-01","value":10,"status":"Extreme Fear"},
		{"date":"2024-01-02","value":80,"status":"Extreme Greed"}
	]`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestHandleHistory_DaysTrimsWindow(t *testing.T) {
	rec := do(t, newTestServer(t, twoPoints()), "/fear-greed-history?days=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"date":"2024-01-02","value":80,"status":"Extreme Greed"}]`, rec.Body.String())
}

func TestHandleHistory_InvalidDays(t *testing.T) {
	srv := newTestServer(t, twoPoints())

	for _, q := range []string{"0", "366", "-3", "abc"} {
		t.Run(q, func(t *testing.T) {
			rec := do(t, srv, "/fear-greed-history?days="+q)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, CodeInvalidDays, decodeError(t, rec).Code)
		})
	}
}

func TestHandleHistory_CoreErrors(t *testing.T) {
	tests := []struct {
		name   string
		source *collector.MockSource
		status int
		code   string
	}{
		{
			name:   "upstream",
			source: &collector.MockSource{Err: &collector.UpstreamError{Source: "cnn", StatusCode: http.StatusTeapot}},
			status: http.StatusBadGateway,
			code:   CodeUpstream,
		},
		{
			name:   "malformed",
			source: &collector.MockSource{Err: collector.ErrMalformedResponse},
			status: http.StatusBadGateway,
			code:   CodeMalformedResponse,
		},
		{
			name:   "bad date",
			source: &collector.MockSource{Points: []model.RawPoint{{X: true, Y: 50}}},
			status: http.StatusBadGateway,
			code:   CodeUnrecognizedDate,
		},
		{
			name:   "other",
			source: &collector.MockSource{Err: errors.New("dial tcp: connection refused")},
			status: http.StatusInternalServerError,
			code:   CodeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t, tt.source), "/fear-greed-history")

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleLatest(t *testing.T) {
	source := twoPoints()
	rec := do(t, newTestServer(t, source), "/fear-greed-latest")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-01-02","value":80,"status":"Extreme Greed"}`, rec.Body.String())
	assert.Equal(t, 1, source.Calls)
}

func TestHandleLatest_EmptyHistory(t *testing.T) {
	rec := do(t, newTestServer(t, &collector.MockSource{Points: []model.RawPoint{}}), "/fear-greed-latest")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, CodeNoData, resp.Code)
	assert.NotEmpty(t, resp.Error)
}

func TestHandleChart(t *testing.T) {
	rec := do(t, newTestServer(t, twoPoints()), "/fear-greed/chart.png?days=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestHandleChart_InvalidDays(t *testing.T) {
	rec := do(t, newTestServer(t, twoPoints()), "/fear-greed/chart.png?days=400")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleGauge(t *testing.T) {
	rec := do(t, newTestServer(t, twoPoints()), "/fear-greed/gauge.png")

	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestHandleGauge_EmptyHistory(t *testing.T) {
	rec := do(t, newTestServer(t, &collector.MockSource{Points: []model.RawPoint{}}), "/fear-greed/gauge.png")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, CodeNoData, decodeError(t, rec).Code)
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestServer(t, twoPoints()), "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, rec).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, twoPoints())
	do(t, srv, "/fear-greed-history")

	rec := do(t, srv, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `feargreed_http_requests_total{method="GET",route="/fear-greed-history",status_code="200"} 1`)
}

func TestMetricsEndpoint_CountsErrorStatus(t *testing.T) {
	srv := newTestServer(t, &collector.MockSource{Err: &collector.UpstreamError{Source: "cnn", StatusCode: http.StatusServiceUnavailable}})
	require.Equal(t, http.StatusBadGateway, do(t, srv, "/fear-greed-history").Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(t, srv, "/fear-greed-history?days=0").Code)

	body := do(t, srv, "/metrics").Body.String()

	assert.Contains(t, body, `feargreed_http_requests_total{method="GET",route="/fear-greed-history",status_code="502"} 1`)
	assert.Contains(t, body, `feargreed_http_requests_total{method="GET",route="/fear-greed-history",status_code="422"} 1`)
	assert.NotContains(t, body, `route="/fear-greed-history",status_code="200"`)
}

func TestMapError_Wrapped(t *testing.T) {
	err := errors.Join(errors.New("context"), &collector.UpstreamError{Source: "cnn", StatusCode: 500})

	status, code := mapError(err)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, CodeUpstream, code)
}
