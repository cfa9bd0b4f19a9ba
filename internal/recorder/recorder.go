package recorder

import "FearGreed/internal/model"

// Recorder persists fetched history and fetch runs for later analysis.
type Recorder interface {
	RecordHistory(points []model.HistoryPoint) error
	RecordFetch(run *model.FetchRun) error
	LoadHistory(limit int) ([]model.HistoryPoint, error)
	Close() error
}
