// Package archive persists completed crawl runs to SQLite so month totals can
// be compared across runs without re-fetching the report server.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store records crawl runs in a local SQLite database. All writes happen in
// one transaction per run; there is no background machinery to stop.
type Store struct {
	db   *sql.DB
	path string
}

// PeriodBytes is one aggregated month as stored with a run.
type PeriodBytes struct {
	Period string // "YYYY-MM"
	Bytes  int64
}

// Run describes one recorded crawl.
type Run struct {
	ID          int64
	StartedAt   time.Time
	StartPeriod string
	EndPeriod   string
	TotalBytes  int64
}

// Open initializes the run database, creating the file and schema when
// needed. An existing file is integrity-checked first so a corrupt database
// fails the run instead of silently recording into it.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("archive: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("archive: mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(`pragma journal_mode=WAL; pragma synchronous=NORMAL; pragma busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: pragmas: %w", err)
	}
	if err := quickCheck(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: quick_check %s: %w", path, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// SaveRun records one completed crawl and its per-month totals in a single
// transaction, returning the new run id.
func (s *Store) SaveRun(ctx context.Context, startedAt time.Time, startPeriod, endPeriod string, entries []PeriodBytes) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("archive: store is nil")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("archive: begin tx: %w", err)
	}
	var total int64
	for _, e := range entries {
		total += e.Bytes
	}
	res, err := tx.ExecContext(ctx,
		`insert into runs(started_at, start_period, end_period, total_bytes) values(?,?,?,?)`,
		startedAt.UTC().Unix(), startPeriod, endPeriod, total)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("archive: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("archive: run id: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `insert into run_periods(run_id, period, bytes) values(?,?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("archive: prepare: %w", err)
	}
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, runID, e.Period, e.Bytes); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("archive: insert period %s: %w", e.Period, err)
		}
	}
	_ = stmt.Close()
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("archive: commit: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("archive: store is nil")
	}
	if limit <= 0 {
		return []Run{}, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`select id, started_at, start_period, end_period, total_bytes from runs order by id desc limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: query runs: %w", err)
	}
	defer rows.Close()

	results := make([]Run, 0, limit)
	for rows.Next() {
		var (
			r  Run
			ts int64
		)
		if err := rows.Scan(&r.ID, &ts, &r.StartPeriod, &r.EndPeriod, &r.TotalBytes); err != nil {
			return nil, fmt.Errorf("archive: scan run: %w", err)
		}
		r.StartedAt = time.Unix(ts, 0).UTC()
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: iterate runs: %w", err)
	}
	return results, nil
}

// RunPeriods returns the per-month totals of one run in period order.
func (s *Store) RunPeriods(ctx context.Context, runID int64) ([]PeriodBytes, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("archive: store is nil")
	}
	rows, err := s.db.QueryContext(ctx,
		`select period, bytes from run_periods where run_id = ? order by period`, runID)
	if err != nil {
		return nil, fmt.Errorf("archive: query periods: %w", err)
	}
	defer rows.Close()

	var results []PeriodBytes
	for rows.Next() {
		var p PeriodBytes
		if err := rows.Scan(&p.Period, &p.Bytes); err != nil {
			return nil, fmt.Errorf("archive: scan period: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: iterate periods: %w", err)
	}
	return results, nil
}

// RunCount returns the number of recorded runs.
func (s *Store) RunCount(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("archive: store is nil")
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `select count(*) from runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("archive: count runs: %w", err)
	}
	return n, nil
}

func ensureSchema(db *sql.DB) error {
	schema := `
	create table if not exists runs (
		id integer primary key autoincrement,
		started_at integer,
		start_period text,
		end_period text,
		total_bytes integer
	);
	create table if not exists run_periods (
		id integer primary key autoincrement,
		run_id integer,
		period text,
		bytes integer
	);
	create index if not exists idx_run_periods_run on run_periods(run_id);
	create index if not exists idx_run_periods_period on run_periods(period);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("archive: schema: %w", err)
	}
	return nil
}

// quickCheck runs a bounded integrity check so a damaged file surfaces as an
// open error rather than a failed insert mid-run.
func quickCheck(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rows, err := db.QueryContext(ctx, "pragma quick_check")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return err
		}
		if strings.TrimSpace(status) != "ok" {
			return fmt.Errorf("quick_check reported %q", status)
		}
	}
	return rows.Err()
}
