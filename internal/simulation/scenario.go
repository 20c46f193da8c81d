package simulation

import (
	"github.com/Dooders/Pyology/internal/config"
	"github.com/Dooders/Pyology/internal/history"
	"github.com/Dooders/Pyology/internal/organelle"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name   string
	Config config.SimulationConfig

	// History, when non-nil, replaces the in-memory store backing the run.
	// Use this to inspect the recorded run, steps, and events afterwards.
	History history.Store

	// Seed, when non-nil, mutates the freshly built cell before the
	// controller captures its adenine baseline. Use this to top up pools,
	// drain ADP, or buffer calcium.
	Seed func(cell *organelle.Cell) error

	// BeforeStep, when non-nil, runs before each step executes.
	BeforeStep func(step int, cell *organelle.Cell)

	// AfterStep, when non-nil, runs after each step completes. Use this to
	// sample pools mid-run.
	AfterStep func(step int, cell *organelle.Cell)
}
