package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FearGreed/internal/collector"
	"FearGreed/internal/model"
	"FearGreed/internal/recorder"
	"FearGreed/internal/render"
	"FearGreed/internal/snapshot"
)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

type memRecorder struct {
	recorder.NoopRecorder
	history []model.HistoryPoint
	runs    []*model.FetchRun
}

func (m *memRecorder) RecordHistory(points []model.HistoryPoint) error {
	m.history = append(m.history, points...)
	return nil
}

func (m *memRecorder) RecordFetch(run *model.FetchRun) error {
	m.runs = append(m.runs, run)
	return nil
}

func newTestScheduler(t *testing.T, src collector.Source) (*Scheduler, *memRecorder, *fakeNotifier, string) {
	t.Helper()
	dir := t.TempDir()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC))

	st := render.DefaultStyle()
	st.Supersample = 1
	st.Clock = clock
	rdr, err := render.NewRenderer(st)
	require.NoError(t, err)

	rec := &memRecorder{}
	n := &fakeNotifier{}
	s := NewScheduler(context.Background(), collector.NewCollector(src, nil), rec, rdr, n, clock, Options{
		HistoryDays: 365,
		ChartDays:   90,
		HistoryFile: filepath.Join(dir, "data", "score_history.json"),
		ChartFile:   filepath.Join(dir, "gen_data", "chart.png"),
		GaugeFile:   filepath.Join(dir, "gen_data", "gauge.png"),
	})
	return s, rec, n, dir
}

func TestRefresh_FansOut(t *testing.T) {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	s, rec, n, _ := newTestScheduler(t, &collector.MockSource{Points: collector.GenerateMockPoints(end, 400)})

	require.NoError(t, s.Refresh(context.Background()))

	saved, err := snapshot.Load(s.Options.HistoryFile)
	require.NoError(t, err)
	assert.Len(t, saved, 365)
	assert.Equal(t, "2024-06-30", saved[len(saved)-1].Date)

	assert.Len(t, rec.history, 365)
	require.Len(t, rec.runs, 1)
	assert.Equal(t, "mock", rec.runs[0].Source)
	assert.Equal(t, 365, rec.runs[0].Points)
	assert.NotEmpty(t, rec.runs[0].ID)
	assert.Empty(t, rec.runs[0].Err)

	for _, p := range []string{s.Options.ChartFile, s.Options.GaugeFile} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "2024-06-30")
}

func TestRefresh_FetchFailureRecordedAndNothingWritten(t *testing.T) {
	src := &collector.MockSource{Err: &collector.UpstreamError{Source: "mock", StatusCode: 500}}
	s, rec, n, _ := newTestScheduler(t, src)

	err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, collector.ErrUpstream)

	require.Len(t, rec.runs, 1)
	assert.Contains(t, rec.runs[0].Err, "status 500")
	assert.Empty(t, rec.history)
	assert.Empty(t, n.sent)

	_, statErr := os.Stat(s.Options.HistoryFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRefresh_NotifierErrorJoined(t *testing.T) {
	s, rec, n, _ := newTestScheduler(t, &collector.MockSource{Points: []model.RawPoint{{X: "2024-01-01", Y: 50}}})
	n.err = errors.New("telegram down")

	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram down")
	assert.Len(t, rec.history, 1)
}

func TestRefresh_EmptyHistory(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, &collector.MockSource{Points: []model.RawPoint{}})
	assert.ErrorIs(t, s.Refresh(context.Background()), render.ErrNoData)
}

func TestRegister_InvalidCron(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, &collector.MockSource{})
	assert.Error(t, s.Register("every tuesday"))
	assert.NoError(t, s.Register("0 0 * * * *"))
	assert.Len(t, s.Cron.Entries(), 1)
}

func TestHandleCommand(t *testing.T) {
	src := &collector.MockSource{Points: []model.RawPoint{
		{X: "2024-01-01", Y: 20},
		{X: "2024-01-02", Y: 60},
	}}
	s, _, _, _ := newTestScheduler(t, src)

	assert.Contains(t, s.HandleCommand(context.Background(), "/latest"), "(Greed)")
	assert.Contains(t, s.HandleCommand(context.Background(), "/history"), "최근 2일")
	assert.Empty(t, s.HandleCommand(context.Background(), "/refresh"))
	assert.Contains(t, s.HandleCommand(context.Background(), "/help"), "/latest")

	src.Err = errors.New("offline")
	assert.Contains(t, s.HandleCommand(context.Background(), "/latest"), "offline")
}

func TestTail(t *testing.T) {
	h := make([]model.HistoryPoint, 5)
	assert.Len(t, tail(h, 2), 2)
	assert.Len(t, tail(h, 10), 5)
	assert.Len(t, tail(h, 0), 5)
}
