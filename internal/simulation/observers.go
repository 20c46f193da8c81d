package simulation

import (
	"fmt"
	"math"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/history"
	"github.com/Dooders/Pyology/internal/metabolite"
	"github.com/Dooders/Pyology/internal/organelle"
)

// Finding is one observation worth recording against the run.
type Finding struct {
	Kind    string
	Message string
	Details map[string]any
}

// Observer inspects the cell after each simulation step. Findings are
// recorded as run events and the step continues; a returned error halts the
// run.
type Observer interface {
	Name() string
	Observe(cell *organelle.Cell) ([]Finding, error)
}

// adenineSpecies orders the redistribution applied when the adenine total
// drifts: excess comes out of ATP first, deficits are credited to AMP.
var adenineSpecies = []string{
	constants.SpeciesATP,
	constants.SpeciesADP,
	constants.SpeciesAMP,
}

// NegativeMetaboliteObserver fails the run if any pool has gone negative.
// The store bounds every mutation, so a hit means a bug upstream, not a
// recoverable condition.
type NegativeMetaboliteObserver struct{}

func (NegativeMetaboliteObserver) Name() string { return "negative_metabolite" }

func (NegativeMetaboliteObserver) Observe(cell *organelle.Cell) ([]Finding, error) {
	compartments := []struct {
		name  string
		store *metabolite.Store
	}{
		{"cytoplasm", cell.Cytoplasm.Store()},
		{"mitochondrion", cell.Mitochondrion.Store()},
	}
	for _, c := range compartments {
		for species, quantity := range c.store.Quantities() {
			if quantity < 0 {
				return nil, fmt.Errorf("%s %s is negative: %g", c.name, species, quantity)
			}
		}
	}
	return nil, nil
}

// AdenineBalanceObserver watches the cell-wide ATP+ADP+AMP total against the
// baseline captured at construction. Drift beyond the tolerance is always
// reported; with correction enabled it is also repaired in the cytoplasm,
// excess removed ATP-first and deficits credited to AMP.
type AdenineBalanceObserver struct {
	// Baseline is the expected cell-wide adenine nucleotide total.
	Baseline float64

	// Correction enables the compensating redistribution. Disabling it
	// leaves the drift in place, reported but uncorrected.
	Correction bool
}

// NewAdenineBalanceObserver captures the cell's current adenine total as the
// baseline.
func NewAdenineBalanceObserver(cell *organelle.Cell, correction bool) (*AdenineBalanceObserver, error) {
	baseline, err := cellAdenineTotal(cell)
	if err != nil {
		return nil, err
	}
	return &AdenineBalanceObserver{Baseline: baseline, Correction: correction}, nil
}

func (o *AdenineBalanceObserver) Name() string { return "adenine_balance" }

func (o *AdenineBalanceObserver) Observe(cell *organelle.Cell) ([]Finding, error) {
	total, err := cellAdenineTotal(cell)
	if err != nil {
		return nil, err
	}
	drift := total - o.Baseline
	if math.Abs(drift) <= constants.AdenineTolerance {
		return nil, nil
	}

	findings := []Finding{{
		Kind:    history.EventObserverWarning,
		Message: fmt.Sprintf("adenine nucleotide total drifted by %+g", drift),
		Details: map[string]any{
			"baseline": o.Baseline,
			"total":    total,
			"drift":    drift,
		},
	}}
	if !o.Correction {
		return findings, nil
	}

	adjusted, err := o.redistribute(cell.Cytoplasm.Store(), drift)
	if err != nil {
		return findings, err
	}
	details := make(map[string]any, len(adjusted)+1)
	details["drift"] = drift
	for species, delta := range adjusted {
		details[species] = delta
	}
	findings = append(findings, Finding{
		Kind:    history.EventConservationAdjustment,
		Message: "adenine nucleotide total restored",
		Details: details,
	})
	return findings, nil
}

// redistribute repairs a drift in the cytoplasm and returns the per-species
// deltas applied. A positive drift is removed ATP, then ADP, then AMP; a
// negative drift is credited to AMP, clamped to the pool's headroom.
func (o *AdenineBalanceObserver) redistribute(store *metabolite.Store, drift float64) (map[string]float64, error) {
	adjusted := make(map[string]float64, len(adenineSpecies))
	if drift > 0 {
		remaining := drift
		for _, species := range adenineSpecies {
			if remaining <= 0 {
				break
			}
			quantity, err := store.Quantity(species)
			if err != nil {
				return nil, err
			}
			take := math.Min(remaining, quantity)
			if take <= 0 {
				continue
			}
			if err := store.ChangeQuantity(species, -take); err != nil {
				return nil, err
			}
			adjusted[species] = -take
			remaining -= take
		}
		return adjusted, nil
	}

	amp, ok := store.Get(constants.SpeciesAMP)
	if !ok {
		return nil, &metabolite.UnknownMetaboliteError{Name: constants.SpeciesAMP}
	}
	credit := math.Min(-drift, amp.MaxQuantity()-amp.Quantity())
	if credit > 0 {
		if err := store.ChangeQuantity(constants.SpeciesAMP, credit); err != nil {
			return nil, err
		}
		adjusted[constants.SpeciesAMP] = credit
	}
	return adjusted, nil
}

func cellAdenineTotal(cell *organelle.Cell) (float64, error) {
	var total float64
	for _, species := range adenineSpecies {
		quantity, err := cell.TotalQuantity(species)
		if err != nil {
			return 0, err
		}
		total += quantity
	}
	return total, nil
}
