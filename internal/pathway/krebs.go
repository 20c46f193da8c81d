package pathway

import (
	"math"

	"github.com/Dooders/Pyology/internal/catalog"
	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
	"github.com/Dooders/Pyology/internal/reaction"
)

// KrebsCycle oxidizes acetyl-CoA one turn at a time, capturing electrons as
// NADH and FADH2 and phosphorylating GDP at the substrate level.
type KrebsCycle struct {
	// TimeStep is the integration step passed to each cycle reaction.
	TimeStep float64

	// Steps holds the eight cycle reactions, citrate synthase through
	// malate dehydrogenase, in turn order.
	Steps []*reaction.Reaction
}

// NewKrebsCycle builds the cycle from the stock reaction catalog.
func NewKrebsCycle() *KrebsCycle {
	return &KrebsCycle{
		TimeStep: constants.KrebsTimeStep,
		Steps:    catalog.KrebsSteps(),
	}
}

// SetDehydrogenaseActivity adjusts the activity multiplier on the two
// regulated dehydrogenases. The mitochondrion drives this from its buffered
// calcium level.
func (k *KrebsCycle) SetDehydrogenaseActivity(activity float64) {
	for _, r := range k.Steps {
		switch r.Name {
		case "isocitrate_dehydrogenase", "alpha_ketoglutarate_dehydrogenase":
			r.Enzyme.SetActivity(activity)
		}
	}
}

// Perform runs one cycle turn per whole unit of the requested acetyl-CoA
// and returns the CO2 released. Fractional input is floored; zero or
// negative input is an error.
//
// Energy and adenine totals are compared across the run. Drift is logged,
// never corrected here: substrate-level phosphorylation moves GDP to GTP,
// and the free-energy table intentionally values products above substrates,
// so the check documents the books rather than balancing them.
func (k *KrebsCycle) Perform(store *metabolite.Store, acetylCoA float64) (co2 float64, err error) {
	units := int(math.Floor(acetylCoA))
	if units <= 0 {
		return 0, &Error{Pathway: "krebs_cycle", Step: "input", Err: ErrNonPositiveUnits}
	}

	log := store.Logger()

	initialEnergy := store.TotalEnergy()
	initialAdenine, err := AdenineTotal(store)
	if err != nil {
		return 0, &Error{Pathway: "krebs_cycle", Step: "adenine baseline", Err: err}
	}

	log.Info("krebs cycle started", "acetyl_coa_units", units)

	for turn := 1; turn <= units; turn++ {
		released, err := k.Turn(store)
		if err != nil {
			return co2, err
		}
		co2 += released
	}

	finalEnergy := store.TotalEnergy()
	if drift := finalEnergy - initialEnergy; math.Abs(drift) > constants.EnergyTolerance {
		log.Warn("energy total drifted across krebs cycle",
			"initial", initialEnergy,
			"final", finalEnergy,
			"drift", drift,
		)
	}
	finalAdenine, err := AdenineTotal(store)
	if err != nil {
		return co2, &Error{Pathway: "krebs_cycle", Step: "adenine accounting", Err: err}
	}
	if drift := finalAdenine - initialAdenine; math.Abs(drift) > constants.AdenineTolerance {
		log.Warn("adenine total drifted across krebs cycle",
			"initial", initialAdenine,
			"final", finalAdenine,
			"drift", drift,
		)
	}

	log.Info("krebs cycle complete", "turns", units, "co2", co2)
	return co2, nil
}

// Turn executes one full pass over the cycle steps and returns the CO2 it
// released, measured as the pool delta.
func (k *KrebsCycle) Turn(store *metabolite.Store) (float64, error) {
	before, err := store.Quantity(constants.SpeciesCO2)
	if err != nil {
		return 0, &Error{Pathway: "krebs_cycle", Step: "co2 baseline", Err: err}
	}
	for _, r := range k.Steps {
		if _, err := r.Execute(store, k.TimeStep); err != nil {
			return 0, &Error{Pathway: "krebs_cycle", Step: r.Name, Err: err}
		}
	}
	after, err := store.Quantity(constants.SpeciesCO2)
	if err != nil {
		return 0, &Error{Pathway: "krebs_cycle", Step: "co2 accounting", Err: err}
	}
	return after - before, nil
}
