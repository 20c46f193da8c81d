package history

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// tableNames returns the set of user tables in the database.
func tableNames(t *testing.T, db *sql.DB) map[string]bool {
	t.Helper()

	rows, err := db.QueryContext(context.Background(),
		`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan table name: %v", err)
		}
		names[name] = true
	}
	return names
}

func TestInitSchema_FreshDB(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	tables := tableNames(t, db)
	for _, want := range []string{"runs", "steps", "events", "schema_version"} {
		if !tables[want] {
			t.Errorf("table %s was not created", want)
		}
	}

	version, err := getSchemaVersion(ctx, db)
	if err != nil {
		t.Fatalf("getSchemaVersion failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("schema version = %d, want %d", version, SchemaVersion)
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("first InitSchema failed: %v", err)
	}

	// Insert a row, then re-init; data must survive
	if _, err := db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, status) VALUES ('r1', '2026-01-01T00:00:00Z', 'completed')`); err != nil {
		t.Fatalf("insert run: %v", err)
	}

	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("second InitSchema failed: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if count != 1 {
		t.Errorf("runs count after re-init = %d, want 1", count)
	}
}

func TestValidateIntegrity(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	if err := ValidateIntegrity(ctx, db); err != nil {
		t.Errorf("ValidateIntegrity failed on fresh schema: %v", err)
	}
}

func TestResetSchema(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, status) VALUES ('r1', '2026-01-01T00:00:00Z', 'running')`); err != nil {
		t.Fatalf("insert run: %v", err)
	}

	if err := ResetSchema(ctx, db); err != nil {
		t.Fatalf("ResetSchema failed: %v", err)
	}

	// Tables recreated, data gone
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		t.Fatalf("count runs after reset: %v", err)
	}
	if count != 0 {
		t.Errorf("runs count after reset = %d, want 0", count)
	}
}

func TestStepsCascadeOnRunDelete(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	run := NewRun("")
	store.BeginRun(ctx, run)
	store.AppendStep(ctx, Step{RunID: run.ID, Index: 0, SimTime: 0.1, QuantitiesJSON: "{}"})
	store.AppendEvent(ctx, Event{RunID: run.ID, Step: 0, Kind: EventObserverWarning, Message: "adenine drift"})

	if _, err := store.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, run.ID); err != nil {
		t.Fatalf("delete run: %v", err)
	}

	steps, err := store.StepsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("StepsForRun() error = %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("steps survived run deletion: %d rows", len(steps))
	}

	events, err := store.EventsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("EventsForRun() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events survived run deletion: %d rows", len(events))
	}
}
