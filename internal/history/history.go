// Package history records simulation runs: one Run row per invocation,
// per-step metabolite snapshots, and the events (conservation adjustments,
// limit enforcement, observer warnings, pathway errors) raised along the way.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusHalted    = "halted"
)

// Event kinds.
const (
	EventConservationAdjustment = "conservation_adjustment"
	EventLimitEnforced          = "limit_enforced"
	EventObserverWarning        = "observer_warning"
	EventPathwayError           = "pathway_error"
)

// Run is one simulation invocation. FinishedAt is zero while the run is
// still in progress.
type Run struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	ConfigJSON    string    `json:"config_json,omitempty"`
	NetATP        float64   `json:"net_atp"`
	TotalPyruvate float64   `json:"total_pyruvate"`
	TotalCO2      float64   `json:"total_co2"`
	Status        string    `json:"status"`
}

// Summary holds the final tallies written by FinishRun.
type Summary struct {
	NetATP        float64 `json:"net_atp"`
	TotalPyruvate float64 `json:"total_pyruvate"`
	TotalCO2      float64 `json:"total_co2"`
	Status        string  `json:"status"`
}

// Step is a per-step snapshot of every metabolite pool, serialized as JSON.
type Step struct {
	RunID          string  `json:"run_id"`
	Index          int     `json:"index"`
	SimTime        float64 `json:"sim_time"`
	QuantitiesJSON string  `json:"quantities_json"`
}

// Event is a notable occurrence during a run, tied to the step that raised it.
type Event struct {
	RunID       string `json:"run_id"`
	Step        int    `json:"step"`
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	DetailsJSON string `json:"details_json,omitempty"`
}

// Store persists runs, steps, and events.
// GetRun returns nil (not an error) when the run does not exist.
type Store interface {
	BeginRun(ctx context.Context, run Run) error
	FinishRun(ctx context.Context, id string, summary Summary) error
	AppendStep(ctx context.Context, step Step) error
	AppendEvent(ctx context.Context, event Event) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	StepsForRun(ctx context.Context, id string) ([]Step, error)
	EventsForRun(ctx context.Context, id string) ([]Event, error)
	Close() error
}

// NewRun creates a Run with a fresh UUID, stamped as started now.
func NewRun(configJSON string) Run {
	return Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		ConfigJSON: configJSON,
		Status:     StatusRunning,
	}
}
