package collector

import (
	"context"

	"FearGreed/internal/model"
)

// Source fetches the raw historical series from one provider.
// Implementations own the request shape and the response path; everything
// after the raw points (dedup, trimming, dates, labels) lives in Collector.
type Source interface {
	FetchRaw(ctx context.Context) ([]model.RawPoint, error)
	Name() string
}
