package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"FearGreed/internal/model"
)

// SQLiteRecorder persists history points and fetch runs to a SQLite database.
type SQLiteRecorder struct {
	db    *sql.DB
	mu    sync.Mutex
	clock clockwork.Clock
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
// A nil clock means the real clock.
func NewSQLiteRecorder(dbPath string, clock clockwork.Clock) (*SQLiteRecorder, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so the HTTP handlers can read while a scheduled refresh writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, clock: clock}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history_points (
			date       TEXT PRIMARY KEY,
			value      REAL NOT NULL,
			status     TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS fetch_runs (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			source      TEXT,
			days        INTEGER,
			points      INTEGER,
			duration_ms INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_runs_ts ON fetch_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordHistory upserts every point by date in a single transaction.
func (r *SQLiteRecorder) RecordHistory(points []model.HistoryPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO history_points (date, value, status, updated_at)
		VALUES (?,?,?,?)
		ON CONFLICT(date) DO UPDATE SET
			value = excluded.value,
			status = excluded.status,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := r.clock.Now().Unix()
	for _, p := range points {
		if _, err := stmt.Exec(p.Date, p.Value, string(p.Status), now); err != nil {
			return fmt.Errorf("upsert %s: %w", p.Date, err)
		}
	}
	return tx.Commit()
}

// RecordFetch stores one fetch run, assigning an ID when the run has none.
func (r *SQLiteRecorder) RecordFetch(run *model.FetchRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	started := run.StartedAt
	if started.IsZero() {
		started = r.clock.Now()
	}

	_, err := r.db.Exec(`INSERT INTO fetch_runs
		(id, timestamp, source, days, points, duration_ms, error)
		VALUES (?,?,?,?,?,?,?)`,
		run.ID, started.Unix(), run.Source, run.Days, run.Points,
		run.Duration.Milliseconds(), run.Err,
	)
	return err
}

// LoadHistory returns the latest limit recorded points, oldest first.
func (r *SQLiteRecorder) LoadHistory(limit int) ([]model.HistoryPoint, error) {
	rows, err := r.db.Query(`SELECT date, value, status FROM (
			SELECT date, value, status FROM history_points ORDER BY date DESC LIMIT ?
		) ORDER BY date ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	history := []model.HistoryPoint{}
	for rows.Next() {
		var p model.HistoryPoint
		var status string
		if err := rows.Scan(&p.Date, &p.Value, &status); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		p.Status = model.Status(status)
		history = append(history, p)
	}
	return history, rows.Err()
}

// CountFetches returns the number of recorded fetch runs.
func (r *SQLiteRecorder) CountFetches() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM fetch_runs`).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
