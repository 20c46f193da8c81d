package simulation

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Dooders/Pyology/internal/history"
	"github.com/Dooders/Pyology/internal/organelle"
)

// Runner orchestrates simulation experiments against a real cell and
// controller.
type Runner struct {
	t   *testing.T
	log *slog.Logger
}

// NewRunner creates a simulation runner whose cells log nowhere.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Run executes the scenario and returns the run result and the final cell.
func (r *Runner) Run(scenario Scenario) (*RunResult, *organelle.Cell) {
	r.t.Helper()

	// Phase 1: Build and seed the cell.
	cell, err := organelle.NewCell(r.log)
	if err != nil {
		r.t.Fatalf("scenario %s: NewCell: %v", scenario.Name, err)
	}
	if scenario.Seed != nil {
		if err := scenario.Seed(cell); err != nil {
			r.t.Fatalf("scenario %s: Seed: %v", scenario.Name, err)
		}
	}

	// Phase 2: Wire the controller.
	store := scenario.History
	if store == nil {
		store = history.NewMemoryStore()
	}
	controller, err := NewController(cell, r.log, store, scenario.Config)
	if err != nil {
		r.t.Fatalf("scenario %s: NewController: %v", scenario.Name, err)
	}
	controller.BeforeStep = scenario.BeforeStep
	controller.AfterStep = scenario.AfterStep

	// Phase 3: Run.
	result, err := controller.Run(context.Background())
	if err != nil {
		r.t.Fatalf("scenario %s: Run: %v", scenario.Name, err)
	}
	return result, cell
}
