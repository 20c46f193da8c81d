// Package simulation drives the cell through multi-step metabolic runs.
//
// The Controller owns the step loop: it feeds glucose into the cytoplasm,
// runs glycolysis, moves pyruvate into the mitochondrion, turns the Krebs
// cycle, shuttles NADH across the membrane, runs the electron transport
// chain and ATP synthase, and exchanges adenine nucleotides between the
// compartments. Feedback, ceilings, and observers apply at the end of each
// step, and every step lands as a snapshot in the history store.
//
// The package also carries a scenario harness for experiments against the
// real pathways and stores, no mocks. Scenarios seed a fresh cell, run a
// configured number of steps, and hand the result to property assertions.
//
// Usage:
//
//	func TestAerobicRun(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result, cell := r.Run(simulation.Scenario{
//	        Name: "aerobic-run",
//	        Config: config.SimulationConfig{
//	            DurationSteps:     5,
//	            TimeStep:          0.1,
//	            GlucosePerStep:    1,
//	            AdenineCorrection: true,
//	        },
//	    })
//	    simulation.AssertStatus(t, result, history.StatusCompleted)
//	    simulation.AssertNetATPAtLeast(t, result, 10)
//	    simulation.AssertPoolsWithinBounds(t, cell)
//	}
package simulation
