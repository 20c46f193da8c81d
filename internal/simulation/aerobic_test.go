package simulation

import (
	"math"
	"testing"

	"github.com/Dooders/Pyology/internal/config"
	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/history"
	"github.com/Dooders/Pyology/internal/organelle"
)

// Three steps of one glucose each: glycolysis yields exactly two pyruvate
// and two net ATP per unit, respiration turns the rest into CO2 and
// synthase ATP, and nothing trips a ceiling or drifts the adenine books.
func TestAerobicRun_FullChain(t *testing.T) {
	var baseline float64
	r := NewRunner(t)
	result, cell := r.Run(Scenario{
		Name: "aerobic-full-chain",
		Config: config.SimulationConfig{
			DurationSteps:     3,
			TimeStep:          0.1,
			GlucosePerStep:    1,
			AdenineCorrection: true,
		},
		Seed: func(cell *organelle.Cell) error {
			b, err := cellAdenineTotal(cell)
			baseline = b
			return err
		},
	})

	AssertStatus(t, result, history.StatusCompleted)
	if result.Steps != 3 {
		t.Errorf("Steps = %d, want 3", result.Steps)
	}
	if math.Abs(result.Pyruvate-6) > 1e-9 {
		t.Errorf("Pyruvate = %v, want 6 (two per glucose unit)", result.Pyruvate)
	}
	AssertNetATPAtLeast(t, result, 10)
	if result.CO2 <= 10 {
		t.Errorf("CO2 = %v, want > 10", result.CO2)
	}
	AssertNoEvents(t, result)

	cyto := cell.Cytoplasm.Store()
	AssertQuantityNear(t, cyto, constants.SpeciesGlucose, 0, 1e-6)
	// The shuttle and fermentation together regenerate the cytosolic NAD+
	// pool every step.
	AssertQuantityNear(t, cyto, constants.SpeciesNAD, constants.InitialNAD, 1e-6)
	if lactate := MustQuantity(t, cyto, constants.SpeciesLactate); lactate <= 0 {
		t.Errorf("lactate = %v, want > 0 (fermentation drip)", lactate)
	}

	AssertPoolsWithinBounds(t, cell)
	AssertAdenineTotal(t, cell, baseline, constants.AdenineTolerance)
}

// With hooks wired, the harness exposes every intermediate state. Pyruvate
// never lingers in the cytoplasm at step boundaries: glycolytic output
// moves into the mitochondrion within the same step.
func TestAerobicRun_PyruvateMovesInStep(t *testing.T) {
	r := NewRunner(t)
	_, _ = r.Run(Scenario{
		Name: "aerobic-pyruvate-import",
		Config: config.SimulationConfig{
			DurationSteps:     2,
			TimeStep:          0.1,
			GlucosePerStep:    1,
			AdenineCorrection: true,
		},
		AfterStep: func(step int, cell *organelle.Cell) {
			pyruvate, err := cell.Cytoplasm.Store().Quantity(constants.SpeciesPyruvate)
			if err != nil {
				t.Fatalf("step %d: Quantity(pyruvate): %v", step, err)
			}
			if pyruvate > 1e-9 {
				t.Errorf("step %d: cytosolic pyruvate = %v, want 0 after import", step, pyruvate)
			}
		},
	})
}

// Without glucose the loop idles: no pathway movement, no events, and the
// recorded steps show static pools.
func TestIdleRun_NoGlucose(t *testing.T) {
	hist := history.NewMemoryStore()
	r := NewRunner(t)
	result, cell := r.Run(Scenario{
		Name:    "idle-no-glucose",
		History: hist,
		Config: config.SimulationConfig{
			DurationSteps:     2,
			TimeStep:          0.1,
			GlucosePerStep:    0,
			AdenineCorrection: true,
		},
	})

	AssertStatus(t, result, history.StatusCompleted)
	if result.NetATP != 0 {
		t.Errorf("NetATP = %v, want 0", result.NetATP)
	}
	if result.Pyruvate != 0 {
		t.Errorf("Pyruvate = %v, want 0", result.Pyruvate)
	}
	if result.CO2 != 0 {
		t.Errorf("CO2 = %v, want 0", result.CO2)
	}
	AssertNoEvents(t, result)
	AssertQuantityNear(t, cell.Cytoplasm.Store(), constants.SpeciesATP, 100, 1e-9)
	AssertQuantityNear(t, cell.Mitochondrion.Store(), constants.SpeciesADP, constants.InitialADP, 1e-9)
}
