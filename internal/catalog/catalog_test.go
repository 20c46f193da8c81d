package catalog

import (
	"testing"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/reaction"
)

// adenineDelta returns produced minus consumed adenine nucleotides for one
// reaction. Every stock reaction must come out to zero: phosphorylation
// state changes, the nucleotide count never does.
func adenineDelta(r *reaction.Reaction) float64 {
	adenine := map[string]bool{
		constants.SpeciesATP: true,
		constants.SpeciesADP: true,
		constants.SpeciesAMP: true,
	}
	var delta float64
	for species, coeff := range r.Produce {
		if adenine[species] {
			delta += coeff
		}
	}
	for species, coeff := range r.Consume {
		if adenine[species] {
			delta -= coeff
		}
	}
	return delta
}

func allStockReactions() []*reaction.Reaction {
	var all []*reaction.Reaction
	all = append(all, GlycolysisInvestment()...)
	all = append(all, GlycolysisYield()...)
	all = append(all, LactateDehydrogenase())
	all = append(all, PyruvateDehydrogenase())
	all = append(all, KrebsSteps()...)
	return all
}

func TestStockReactionsConserveAdenine(t *testing.T) {
	for _, r := range allStockReactions() {
		if d := adenineDelta(r); d != 0 {
			t.Errorf("%s: adenine delta = %g, want 0", r.Name, d)
		}
	}
}

func TestStockReactionsAreWellFormed(t *testing.T) {
	for _, r := range allStockReactions() {
		if r.Name == "" {
			t.Error("reaction with empty name")
		}
		if r.Enzyme == nil {
			t.Errorf("%s: nil enzyme", r.Name)
			continue
		}
		if r.Enzyme.VMax <= 0 {
			t.Errorf("%s: VMax = %g, want > 0", r.Name, r.Enzyme.VMax)
		}
		if r.Enzyme.Km <= 0 {
			t.Errorf("%s: Km = %g, want > 0", r.Name, r.Enzyme.Km)
		}
		if _, ok := r.Consume[r.Substrate]; !ok {
			t.Errorf("%s: rate-law substrate %s is not consumed", r.Name, r.Substrate)
		}
		for species, coeff := range r.Consume {
			if coeff <= 0 {
				t.Errorf("%s: consume %s coefficient = %g, want > 0", r.Name, species, coeff)
			}
		}
		for species, coeff := range r.Produce {
			if coeff <= 0 {
				t.Errorf("%s: produce %s coefficient = %g, want > 0", r.Name, species, coeff)
			}
		}
	}
}

// chained asserts that each reaction consumes something the previous one
// produced, so a pathway slice actually forms a chain.
func chained(t *testing.T, steps []*reaction.Reaction) {
	t.Helper()
	for i := 1; i < len(steps); i++ {
		prev, cur := steps[i-1], steps[i]
		linked := false
		for species := range prev.Produce {
			if _, ok := cur.Consume[species]; ok {
				linked = true
				break
			}
		}
		if !linked {
			t.Errorf("%s does not consume any product of %s", cur.Name, prev.Name)
		}
	}
}

func TestGlycolysisInvestmentChains(t *testing.T) {
	steps := GlycolysisInvestment()
	if len(steps) != 5 {
		t.Fatalf("investment steps = %d, want 5", len(steps))
	}
	chained(t, steps)

	// The phase costs exactly two ATP per glucose.
	var atpSpent float64
	for _, r := range steps {
		atpSpent += r.Consume[constants.SpeciesATP]
	}
	if atpSpent != 2 {
		t.Errorf("investment ATP cost = %g, want 2", atpSpent)
	}
}

func TestGlycolysisYieldChains(t *testing.T) {
	steps := GlycolysisYield()
	if len(steps) != 5 {
		t.Fatalf("yield steps = %d, want 5", len(steps))
	}
	chained(t, steps)

	// One pass earns two ATP and one NADH and ends in pyruvate.
	var atpEarned, nadhEarned float64
	for _, r := range steps {
		atpEarned += r.Produce[constants.SpeciesATP]
		nadhEarned += r.Produce[constants.SpeciesNADH]
	}
	if atpEarned != 2 {
		t.Errorf("yield ATP = %g, want 2", atpEarned)
	}
	if nadhEarned != 1 {
		t.Errorf("yield NADH = %g, want 1", nadhEarned)
	}
	last := steps[len(steps)-1]
	if _, ok := last.Produce[constants.SpeciesPyruvate]; !ok {
		t.Errorf("%s does not produce pyruvate", last.Name)
	}
}

func TestKrebsStepsChainAndDecarboxylate(t *testing.T) {
	steps := KrebsSteps()
	if len(steps) != 8 {
		t.Fatalf("cycle steps = %d, want 8", len(steps))
	}
	chained(t, steps)

	// A full turn releases two CO2 and regenerates its oxaloacetate.
	var co2 float64
	for _, r := range steps {
		co2 += r.Produce[constants.SpeciesCO2]
	}
	if co2 != 2 {
		t.Errorf("CO2 per turn = %g, want 2", co2)
	}

	first, last := steps[0], steps[len(steps)-1]
	if first.Consume[constants.SpeciesOxaloacetate] != last.Produce[constants.SpeciesOxaloacetate] {
		t.Error("oxaloacetate is not regenerated across a turn")
	}

	// Electron capture per turn: three NADH, one FADH2, one GTP.
	var nadh, fadh2, gtp float64
	for _, r := range steps {
		nadh += r.Produce[constants.SpeciesNADH]
		fadh2 += r.Produce[constants.SpeciesFADH2]
		gtp += r.Produce[constants.SpeciesGTP]
	}
	if nadh != 3 {
		t.Errorf("NADH per turn = %g, want 3", nadh)
	}
	if fadh2 != 1 {
		t.Errorf("FADH2 per turn = %g, want 1", fadh2)
	}
	if gtp != 1 {
		t.Errorf("GTP per turn = %g, want 1", gtp)
	}
}

func TestKrebsRegulatorsPresent(t *testing.T) {
	steps := KrebsSteps()
	byName := make(map[string]*reaction.Reaction, len(steps))
	for _, r := range steps {
		byName[r.Name] = r
	}

	idh := byName["isocitrate_dehydrogenase"]
	if idh == nil {
		t.Fatal("isocitrate_dehydrogenase missing from cycle")
	}
	if idh.Enzyme.HillCoefficient != 2 {
		t.Errorf("IDH Hill coefficient = %g, want 2", idh.Enzyme.HillCoefficient)
	}
	if _, ok := idh.Enzyme.Inhibitors[constants.SpeciesATP]; !ok {
		t.Error("IDH should be inhibited by ATP")
	}
	if _, ok := idh.Enzyme.Activators[constants.SpeciesADP]; !ok {
		t.Error("IDH should be activated by ADP")
	}

	akgdh := byName["alpha_ketoglutarate_dehydrogenase"]
	if akgdh == nil {
		t.Fatal("alpha_ketoglutarate_dehydrogenase missing from cycle")
	}
	for _, inhibitor := range []string{
		constants.SpeciesATP,
		constants.SpeciesNADH,
		constants.SpeciesSuccinylCoA,
	} {
		if _, ok := akgdh.Enzyme.Inhibitors[inhibitor]; !ok {
			t.Errorf("alpha-KGDH should be inhibited by %s", inhibitor)
		}
	}
}

func TestConstructorsReturnFreshInstances(t *testing.T) {
	a := GlycolysisInvestment()
	b := GlycolysisInvestment()
	for i := range a {
		if a[i] == b[i] {
			t.Errorf("step %d shared between constructor calls", i)
		}
		if a[i].Enzyme == b[i].Enzyme {
			t.Errorf("step %d enzyme shared between constructor calls", i)
		}
	}

	// Mutating one instance's enzyme must not leak into the other.
	a[0].Enzyme.SetActivity(3)
	if b[0].Enzyme.Activity() != 1 {
		t.Errorf("activity leaked across instances: %g", b[0].Enzyme.Activity())
	}
}
