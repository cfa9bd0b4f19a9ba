package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"FearGreed/internal/model"
)

const (
	// DefaultCNNURL is the public graph-data endpoint behind the CNN Fear & Greed page.
	DefaultCNNURL = "https://production.dataviz.cnn.io/index/fearandgreed/graphdata"

	// DefaultUserAgent is sent because the provider rejects requests without a browser agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/114.0.0.0 Safari/537.36"

	maxErrorBody = 512
)

// CNNSource implements Source using the CNN graph-data API.
type CNNSource struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

// NewCNNSource creates a CNN source with optional proxy support.
// Empty endpoint or userAgent fall back to the defaults; timeout <= 0 means 30s.
func NewCNNSource(endpoint, userAgent, proxyURL string, timeout time.Duration) *CNNSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if endpoint == "" {
		endpoint = DefaultCNNURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CNNSource{
		URL:       endpoint,
		UserAgent: userAgent,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (s *CNNSource) Name() string { return "cnn" }

// cnnGraphData is the part of the graph-data response we read.
// Pointers distinguish a missing object from an empty one.
type cnnGraphData struct {
	Historical *struct {
		Data *[]model.RawPoint `json:"data"`
	} `json:"fear_and_greed_historical"`
}

func (s *CNNSource) FetchRaw(ctx context.Context) ([]model.RawPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cnn fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cnn read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &UpstreamError{Source: s.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	return decodeGraphData(body)
}

func decodeGraphData(body []byte) ([]model.RawPoint, error) {
	var doc cnnGraphData
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrMalformedResponse, err)
	}
	if doc.Historical == nil {
		return nil, fmt.Errorf("%w: missing fear_and_greed_historical", ErrMalformedResponse)
	}
	if doc.Historical.Data == nil {
		return nil, fmt.Errorf("%w: missing fear_and_greed_historical.data", ErrMalformedResponse)
	}
	return *doc.Historical.Data, nil
}
