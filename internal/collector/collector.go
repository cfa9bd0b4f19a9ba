package collector

import (
	"context"
	"fmt"
	"time"

	"FearGreed/internal/classify"
	"FearGreed/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Points []model.RawPoint
	Err    error
	Calls  int
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchRaw(_ context.Context) ([]model.RawPoint, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Points != nil {
		return m.Points, nil
	}
	return GenerateMockPoints(time.Now(), 30), nil
}

// GenerateMockPoints builds count daily points ending at end, as epoch
// milliseconds like the live feed, with values sweeping through every band.
func GenerateMockPoints(end time.Time, count int) []model.RawPoint {
	points := make([]model.RawPoint, count)
	day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		ts := day.AddDate(0, 0, -(count - 1 - i))
		points[i] = model.RawPoint{
			X: float64(ts.UnixMilli()),
			Y: float64((i * 7) % 101),
		}
	}
	return points
}

// Collector turns a provider's raw series into classified history points.
// It holds no mutable state and is safe for concurrent use.
type Collector struct {
	Source   Source
	Location *time.Location
}

// NewCollector creates a new Collector. A nil loc converts timestamps in UTC.
func NewCollector(source Source, loc *time.Location) *Collector {
	if loc == nil {
		loc = time.UTC
	}
	return &Collector{Source: source, Location: loc}
}

// FetchHistory performs one upstream request and returns the last limitDays
// unique days, oldest first. The provider is assumed to deliver its series in
// chronological order; the result is not re-sorted.
func (c *Collector) FetchHistory(ctx context.Context, limitDays int) ([]model.HistoryPoint, error) {
	if limitDays < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limitDays)
	}

	raw, err := c.Source.FetchRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s history: %w", c.Source.Name(), err)
	}

	window := lastN(Deduplicate(raw), limitDays)

	history := make([]model.HistoryPoint, 0, len(window))
	for _, p := range window {
		date, err := NormalizeDate(p.X, c.Location)
		if err != nil {
			return nil, fmt.Errorf("normalize %s history: %w", c.Source.Name(), err)
		}
		history = append(history, model.HistoryPoint{
			Date:   date,
			Value:  p.Y,
			Status: classify.Classify(p.Y),
		})
	}
	return history, nil
}

// Latest returns the most recent history point, or ErrEmptyHistory when the
// provider's series is empty.
func (c *Collector) Latest(ctx context.Context) (model.HistoryPoint, error) {
	history, err := c.FetchHistory(ctx, 1)
	if err != nil {
		return model.HistoryPoint{}, err
	}
	if len(history) == 0 {
		return model.HistoryPoint{}, fmt.Errorf("latest %s point: %w", c.Source.Name(), ErrEmptyHistory)
	}
	return history[len(history)-1], nil
}
