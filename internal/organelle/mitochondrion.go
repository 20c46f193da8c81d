package organelle

import (
	"log/slog"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
)

// Mitochondrion is the respiratory compartment: the Krebs cycle
// intermediates, the electron carrier pools, the proton gradient, and a
// calcium buffer that modulates dehydrogenase activity.
type Mitochondrion struct {
	store   *metabolite.Store
	initial map[string]float64
	calcium float64
}

func mitochondrionSeeds() []seed {
	return []seed{
		{constants.SpeciesAcetylCoA, 0, constants.MaxMetabolite},
		// One oxaloacetate primes the cycle; each turn regenerates it.
		{constants.SpeciesOxaloacetate, 1, constants.MaxMetabolite},
		{constants.SpeciesCitrate, 0, constants.MaxMetabolite},
		{constants.SpeciesIsocitrate, 0, constants.MaxMetabolite},
		{constants.SpeciesAlphaKetoglutarate, 0, constants.MaxMetabolite},
		{constants.SpeciesSuccinylCoA, 0, constants.MaxMetabolite},
		{constants.SpeciesSuccinate, 0, constants.MaxMetabolite},
		{constants.SpeciesFumarate, 0, constants.MaxMetabolite},
		{constants.SpeciesMalate, 0, constants.MaxMetabolite},
		{constants.SpeciesPyruvate, 0, constants.MaxMetabolite},
		{constants.SpeciesCO2, 0, constants.MaxMetabolite},
		{constants.SpeciesNAD, constants.InitialNAD, constants.MaxMetabolite},
		{constants.SpeciesNADH, 0, constants.MaxMetabolite},
		{constants.SpeciesFAD, 10, constants.MaxMetabolite},
		{constants.SpeciesFADH2, 0, constants.MaxMetabolite},
		{constants.SpeciesGDP, 10, constants.MaxMetabolite},
		{constants.SpeciesGTP, 0, constants.MaxMetabolite},
		{constants.SpeciesPhosphate, constants.MaxMetabolite, constants.MaxMetabolite},
		{constants.SpeciesATP, 0, constants.MaxMetabolite},
		{constants.SpeciesADP, constants.InitialADP, constants.MaxMetabolite},
		{constants.SpeciesAMP, 0, constants.MaxMetabolite},
		{constants.SpeciesOxygen, constants.InitialOxygen, constants.MaxMetabolite},
		{constants.SpeciesUbiquinone, constants.InitialUbiquinone, constants.MaxMetabolite},
		{constants.SpeciesUbiquinol, 0, constants.MaxMetabolite},
		{constants.SpeciesCytochromeCOxidized, constants.InitialCytochromeC, constants.MaxMetabolite},
		{constants.SpeciesCytochromeCReduced, 0, constants.MaxMetabolite},
		{constants.SpeciesProtonGradient, 0, constants.MaxProtonGradient},
	}
}

// NewMitochondrion builds a mitochondrion with standard starting pools and
// captures the seeded state as the reset point.
func NewMitochondrion(log *slog.Logger) (*Mitochondrion, error) {
	store := metabolite.NewStore(log)
	if err := applySeeds(store, mitochondrionSeeds()); err != nil {
		return nil, err
	}
	return &Mitochondrion{
		store:   store,
		initial: store.Snapshot(),
	}, nil
}

// Store returns the compartment's metabolite store.
func (m *Mitochondrion) Store() *metabolite.Store { return m.store }

// Reset restores every seeded pool to its starting quantity and clears the
// calcium buffer.
func (m *Mitochondrion) Reset() error {
	m.calcium = 0
	return m.store.RestoreSnapshot(m.initial)
}

// BufferCalcium takes up calcium into the matrix buffer. Uptake beyond the
// buffering threshold is refused; the rejected amount is returned to the
// caller.
func (m *Mitochondrion) BufferCalcium(amount float64) (stored, rejected float64) {
	if amount <= 0 {
		return 0, 0
	}
	room := constants.CalciumThreshold - m.calcium
	if room <= 0 {
		return 0, amount
	}
	stored = amount
	if stored > room {
		stored = room
	}
	m.calcium += stored
	rejected = amount - stored
	if rejected > 0 {
		m.store.Logger().Warn("calcium buffer full, uptake refused",
			"rejected", rejected,
			"buffered", m.calcium,
		)
	}
	return stored, rejected
}

// Calcium returns the currently buffered calcium.
func (m *Mitochondrion) Calcium() float64 { return m.calcium }

// DehydrogenaseBoost returns the activity multiplier calcium exerts on the
// cycle dehydrogenases: a flat boost once the buffer is saturated,
// otherwise neutral.
func (m *Mitochondrion) DehydrogenaseBoost() float64 {
	if m.calcium >= constants.CalciumThreshold {
		return constants.CalciumBoostFactor
	}
	return 1
}
