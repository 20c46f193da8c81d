// Package kinetics implements the enzyme rate laws: saturating
// Michaelis-Menten kinetics with inhibitor/activator adjustment, the Hill
// cooperative variant, and multiplicative allosteric regulation. All rate
// calculations are pure functions of a concentration snapshot.
package kinetics

import "math"

// Enzyme is a shared, read-only rate-law evaluator. The only mutable state
// is the activity multiplier, which pathway-level feedback logic adjusts;
// everything else is fixed at construction.
type Enzyme struct {
	Name string

	// VMax is the maximal velocity at saturating substrate.
	VMax float64
	// Km is the Michaelis constant, overridable per species via KmBySubstrate.
	Km float64
	// KmBySubstrate optionally carries species-specific Michaelis constants.
	// Species listed here are part of the concentration snapshot a reaction
	// takes before computing its rate.
	KmBySubstrate map[string]float64

	// Inhibitors maps species to inhibition constants (Ki). Each present
	// inhibitor scales the effective Km by (1 + [I]/Ki).
	Inhibitors map[string]float64
	// Activators maps species to activation constants (Ka). Each present
	// activator scales the effective Vmax by (1 + [A]/Ka).
	Activators map[string]float64

	// HillCoefficient switches the rate law to the cooperative Hill form
	// when greater than zero. Zero means standard Michaelis-Menten.
	HillCoefficient float64

	// activity is the feedback multiplier on Vmax. The zero value means 1.
	activity float64
}

// Activity returns the current feedback multiplier.
func (e *Enzyme) Activity() float64 {
	if e.activity == 0 {
		return 1
	}
	return e.activity
}

// SetActivity replaces the feedback multiplier. Values at or below zero
// reset it to 1.
func (e *Enzyme) SetActivity(a float64) {
	if a <= 0 {
		a = 1
	}
	e.activity = a
}

// Rate computes the reaction rate for the given substrate concentration.
// Inhibitors present in levels raise the effective Km; activators raise the
// effective Vmax; absent species contribute nothing. With a positive Hill
// coefficient n the cooperative form Vmax*S^n/(Km^n+S^n) applies.
func (e *Enzyme) Rate(substrate float64, levels map[string]float64) float64 {
	return e.rate(e.Km, substrate, levels)
}

// RateFor is Rate with the Michaelis constant resolved for a specific
// species, honoring KmBySubstrate overrides.
func (e *Enzyme) RateFor(species string, substrate float64, levels map[string]float64) float64 {
	return e.rate(e.KmFor(species), substrate, levels)
}

func (e *Enzyme) rate(km, substrate float64, levels map[string]float64) float64 {
	if substrate <= 0 {
		return 0
	}

	kmEff := km
	for species, ki := range e.Inhibitors {
		kmEff *= 1 + levels[species]/ki
	}

	vmaxEff := e.VMax * e.Activity()
	for species, ka := range e.Activators {
		vmaxEff *= 1 + levels[species]/ka
	}

	if n := e.HillCoefficient; n > 0 {
		sn := math.Pow(substrate, n)
		return vmaxEff * sn / (math.Pow(kmEff, n) + sn)
	}
	return vmaxEff * substrate / (kmEff + substrate)
}

// KmFor returns the Michaelis constant for a species, falling back to the
// enzyme-wide Km when no per-substrate override exists.
func (e *Enzyme) KmFor(species string) float64 {
	if km, ok := e.KmBySubstrate[species]; ok {
		return km
	}
	return e.Km
}

// AllostericActivity combines the enzyme's independent inhibition and
// activation factors into a single activity multiplier:
// activity * product of 1/(1+[I]/Ki) * product of (1+[A]/Ka).
func (e *Enzyme) AllostericActivity(levels map[string]float64) float64 {
	f := e.Activity()
	for species, ki := range e.Inhibitors {
		f *= 1 / (1 + levels[species]/ki)
	}
	for species, ka := range e.Activators {
		f *= 1 + levels[species]/ka
	}
	return f
}
