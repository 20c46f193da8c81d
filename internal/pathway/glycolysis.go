package pathway

import (
	"fmt"
	"math"

	"github.com/Dooders/Pyology/internal/catalog"
	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/kinetics"
	"github.com/Dooders/Pyology/internal/metabolite"
	"github.com/Dooders/Pyology/internal/reaction"
)

// Glycolysis converts glucose into pyruvate in two phases: the ATP
// investment phase and the ATP yield phase. The investment phase runs once
// per glucose unit, the yield phase twice (each glucose splits into two
// triose phosphates).
type Glycolysis struct {
	// TimeStep is the integration step passed to each reaction.
	TimeStep float64

	// Investment holds steps 1-5, hexokinase through triose phosphate
	// isomerase, in pathway order.
	Investment []*reaction.Reaction

	// Yield holds steps 6-10, GAPDH through pyruvate kinase.
	Yield []*reaction.Reaction

	// Regeneration is the anaerobic NAD+ fallback, run after the yield
	// phase when both NADH and pyruvate have accumulated.
	Regeneration *reaction.Reaction

	// Correction enables the post-hoc adenine redistribution when the
	// ATP+ADP+AMP total drifts beyond tolerance. When disabled, drift is
	// still detected and logged.
	Correction bool
}

// NewGlycolysis builds the pathway from the stock reaction catalog with the
// compensating adenine correction enabled.
func NewGlycolysis() *Glycolysis {
	return &Glycolysis{
		TimeStep:     constants.GlycolysisTimeStep,
		Investment:   catalog.GlycolysisInvestment(),
		Yield:        catalog.GlycolysisYield(),
		Regeneration: catalog.LactateDehydrogenase(),
		Correction:   true,
	}
}

// SetPhosphofructokinaseActivity adjusts the activity multiplier on the
// committed step's enzyme. The simulation controller drives this from the
// cytosolic ADP level to model energy-demand feedback.
func (g *Glycolysis) SetPhosphofructokinaseActivity(activity float64) {
	g.setActivity("phosphofructokinase", activity)
}

func (g *Glycolysis) setActivity(name string, activity float64) {
	for _, r := range g.Investment {
		if r.Name == name {
			r.Enzyme.SetActivity(activity)
		}
	}
	for _, r := range g.Yield {
		if r.Name == name {
			r.Enzyme.SetActivity(activity)
		}
	}
}

// Phosphofructokinase returns the committed step's enzyme, or nil if the
// pathway was assembled without one.
func (g *Glycolysis) Phosphofructokinase() *kinetics.Enzyme {
	for _, r := range g.Investment {
		if r.Name == "phosphofructokinase" {
			return r.Enzyme
		}
	}
	return nil
}

// Perform runs glycolysis for the whole units of the requested glucose.
// It returns the net ATP gain and the pyruvate produced, both measured as
// pool deltas on the store.
//
// Fractional glucose is floored; zero or negative input is an error.
// Pyruvate is measured before NAD+ regeneration so the figure reflects
// glycolytic output, not what fermentation leaves behind.
func (g *Glycolysis) Perform(store *metabolite.Store, glucose float64) (netATP, pyruvate float64, err error) {
	units := int(math.Floor(glucose))
	if units <= 0 {
		return 0, 0, &Error{Pathway: "glycolysis", Step: "input", Err: ErrNonPositiveUnits}
	}

	log := store.Logger()

	initialAdenine, err := AdenineTotal(store)
	if err != nil {
		return 0, 0, &Error{Pathway: "glycolysis", Step: "adenine baseline", Err: err}
	}
	initialATP, err := store.Quantity(constants.SpeciesATP)
	if err != nil {
		return 0, 0, &Error{Pathway: "glycolysis", Step: "adenine baseline", Err: err}
	}
	initialPyruvate, err := store.Quantity(constants.SpeciesPyruvate)
	if err != nil {
		return 0, 0, &Error{Pathway: "glycolysis", Step: "pyruvate baseline", Err: err}
	}

	log.Info("glycolysis started", "glucose_units", units)

	for unit := 1; unit <= units; unit++ {
		for _, r := range g.Investment {
			if _, err := r.Execute(store, g.TimeStep); err != nil {
				return 0, 0, &Error{
					Pathway: "glycolysis",
					Step:    fmt.Sprintf("investment phase glucose unit %d (%s)", unit, r.Name),
					Err:     err,
				}
			}
		}
	}

	// Two triose phosphates per glucose, so two yield passes per unit.
	for unit := 1; unit <= 2*units; unit++ {
		for _, r := range g.Yield {
			if _, err := r.Execute(store, g.TimeStep); err != nil {
				return 0, 0, &Error{
					Pathway: "glycolysis",
					Step:    fmt.Sprintf("yield phase g3p unit %d (%s)", unit, r.Name),
					Err:     err,
				}
			}
		}
	}

	finalPyruvate, err := store.Quantity(constants.SpeciesPyruvate)
	if err != nil {
		return 0, 0, &Error{Pathway: "glycolysis", Step: "pyruvate accounting", Err: err}
	}
	pyruvate = finalPyruvate - initialPyruvate

	if err := g.regenerateNAD(store); err != nil {
		return 0, 0, err
	}

	if err := g.enforceAdenineBalance(store, initialAdenine, initialATP); err != nil {
		return 0, 0, err
	}

	finalATP, err := store.Quantity(constants.SpeciesATP)
	if err != nil {
		return 0, 0, &Error{Pathway: "glycolysis", Step: "adenine accounting", Err: err}
	}
	netATP = finalATP - initialATP

	log.Info("glycolysis complete",
		"glucose_units", units,
		"net_atp", netATP,
		"pyruvate", pyruvate,
	)
	return netATP, pyruvate, nil
}

// regenerateNAD runs the lactate fallback when both NADH and pyruvate are
// present. A missing regeneration reaction disables the fallback.
func (g *Glycolysis) regenerateNAD(store *metabolite.Store) error {
	if g.Regeneration == nil {
		return nil
	}
	nadh, err := store.Quantity(constants.SpeciesNADH)
	if err != nil {
		return &Error{Pathway: "glycolysis", Step: "nad regeneration", Err: err}
	}
	pyruvate, err := store.Quantity(constants.SpeciesPyruvate)
	if err != nil {
		return &Error{Pathway: "glycolysis", Step: "nad regeneration", Err: err}
	}
	if math.Min(nadh, pyruvate) <= 0 {
		return nil
	}
	if _, err := g.Regeneration.Execute(store, g.TimeStep); err != nil {
		return &Error{
			Pathway: "glycolysis",
			Step:    fmt.Sprintf("nad regeneration (%s)", g.Regeneration.Name),
			Err:     err,
		}
	}
	return nil
}

// enforceAdenineBalance compares the adenine nucleotide total against the
// pre-pathway baseline and, when drift exceeds tolerance and correction is
// enabled, redistributes the excess out of ATP first and ADP second. The
// drift is always logged; the mutation is the configurable part.
func (g *Glycolysis) enforceAdenineBalance(store *metabolite.Store, initialAdenine, initialATP float64) error {
	finalAdenine, err := AdenineTotal(store)
	if err != nil {
		return &Error{Pathway: "glycolysis", Step: "adenine accounting", Err: err}
	}
	excess := finalAdenine - initialAdenine
	if math.Abs(excess) <= constants.AdenineTolerance {
		return nil
	}

	log := store.Logger()
	log.Warn("adenine nucleotide conservation drift",
		"initial_total", initialAdenine,
		"final_total", finalAdenine,
		"excess", excess,
		"correction_enabled", g.Correction,
	)
	if !g.Correction {
		return nil
	}

	finalATP, err := store.Quantity(constants.SpeciesATP)
	if err != nil {
		return &Error{Pathway: "glycolysis", Step: "adenine correction", Err: err}
	}
	atpAdjustment := math.Min(excess, finalATP-initialATP)
	if err := store.ChangeQuantity(constants.SpeciesATP, -atpAdjustment); err != nil {
		return &Error{Pathway: "glycolysis", Step: "adenine correction", Err: err}
	}
	adpAdjustment := excess - atpAdjustment
	if err := store.ChangeQuantity(constants.SpeciesADP, -adpAdjustment); err != nil {
		return &Error{Pathway: "glycolysis", Step: "adenine correction", Err: err}
	}

	log.Warn("adenine balance corrected",
		"atp_adjustment", atpAdjustment,
		"adp_adjustment", adpAdjustment,
	)
	return nil
}
