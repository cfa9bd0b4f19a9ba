package model

import "time"

// RawPoint is one entry of the provider's historical series.
// X is either a "2006-01-02" string or epoch milliseconds, as decoded from JSON.
type RawPoint struct {
	X any     `json:"x"`
	Y float64 `json:"y"`
}

// HistoryPoint represents one day's classified observation.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Status Status  `json:"status"`
}

// Time parses Date in the given location. A nil location means UTC.
func (p HistoryPoint) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, p.Date, loc)
}

// DateLayout is the canonical calendar-date format.
const DateLayout = "2006-01-02"

// FetchRun describes one upstream fetch, for the recorder.
type FetchRun struct {
	ID        string
	Source    string
	Days      int
	Points    int
	Err       string
	StartedAt time.Time
	Duration  time.Duration
}
