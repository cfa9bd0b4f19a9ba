package recorder

import "FearGreed/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordHistory(_ []model.HistoryPoint) error { return nil }
func (n *NoopRecorder) RecordFetch(_ *model.FetchRun) error        { return nil }
func (n *NoopRecorder) LoadHistory(_ int) ([]model.HistoryPoint, error) {
	return []model.HistoryPoint{}, nil
}
func (n *NoopRecorder) Close() error { return nil }
