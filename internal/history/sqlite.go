package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store using SQLite for persistence.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the history database at dbPath.
// Parent directories are created as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	// Initialize schema
	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// BeginRun inserts a new run row. The run ID must be set and unused.
func (s *SQLiteStore) BeginRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if run.Status == "" {
		run.Status = StatusRunning
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, config_json, net_atp, total_pyruvate, total_co2, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.Format(time.RFC3339Nano), run.ConfigJSON,
		run.NetATP, run.TotalPyruvate, run.TotalCO2, run.Status)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun stamps the run finished and records its final tallies.
func (s *SQLiteStore) FinishRun(ctx context.Context, id string, summary Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := summary.Status
	if status == "" {
		status = StatusCompleted
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, net_atp = ?, total_pyruvate = ?, total_co2 = ?, status = ?
		WHERE id = ?
	`, time.Now().Format(time.RFC3339Nano), summary.NetATP, summary.TotalPyruvate,
		summary.TotalCO2, status, id)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check finish result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// AppendStep inserts a per-step snapshot. The run must exist (enforced by
// the foreign key).
func (s *SQLiteStore) AppendStep(ctx context.Context, step Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO steps (run_id, step_index, sim_time, quantities_json)
		VALUES (?, ?, ?, ?)
	`, step.RunID, step.Index, step.SimTime, step.QuantitiesJSON)
	if err != nil {
		return fmt.Errorf("failed to insert step: %w", err)
	}
	return nil
}

// AppendEvent inserts an event row. The run must exist (enforced by the
// foreign key).
func (s *SQLiteStore) AppendEvent(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (run_id, step_index, kind, message, details_json)
		VALUES (?, ?, ?, ?, ?)
	`, event.RunID, event.Step, event.Kind, event.Message, event.DetailsJSON)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil if not found.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, config_json, net_atp, total_pyruvate, total_co2, status
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs most recent first. A limit <= 0 returns all runs.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, config_json, net_atp, total_pyruvate, total_co2, status
		FROM runs ORDER BY rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	results := make([]Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		results = append(results, *run)
	}
	return results, rows.Err()
}

// StepsForRun returns the recorded steps for a run in step order.
func (s *SQLiteStore) StepsForRun(ctx context.Context, id string) ([]Step, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, step_index, sim_time, quantities_json
		FROM steps WHERE run_id = ? ORDER BY step_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	steps := make([]Step, 0)
	for rows.Next() {
		var step Step
		if err := rows.Scan(&step.RunID, &step.Index, &step.SimTime, &step.QuantitiesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

// EventsForRun returns the recorded events for a run in append order.
func (s *SQLiteStore) EventsForRun(ctx context.Context, id string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, step_index, kind, message, details_json
		FROM events WHERE run_id = ? ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var event Event
		var details sql.NullString
		if err := rows.Scan(&event.RunID, &event.Step, &event.Kind, &event.Message, &details); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.DetailsJSON = details.String
		events = append(events, event)
	}
	return events, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner abstracts *sql.Row and *sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRun reads one run row, converting stored timestamps back to time.Time.
func scanRun(row scanner) (*Run, error) {
	var run Run
	var startedAt string
	var finishedAt, configJSON sql.NullString

	err := row.Scan(&run.ID, &startedAt, &finishedAt, &configJSON,
		&run.NetATP, &run.TotalPyruvate, &run.TotalCO2, &run.Status)
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if finishedAt.Valid && finishedAt.String != "" {
		run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}
	}
	run.ConfigJSON = configJSON.String

	return &run, nil
}
