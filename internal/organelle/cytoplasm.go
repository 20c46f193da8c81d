package organelle

import (
	"log/slog"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
)

// Cytoplasm is the glycolytic compartment: glucose intake, the ten
// glycolytic intermediates, and the cytosolic adenine and redox pools.
type Cytoplasm struct {
	store   *metabolite.Store
	initial map[string]float64
}

func cytoplasmSeeds() []seed {
	return []seed{
		{constants.SpeciesGlucose, 0, constants.MaxMetabolite},
		{constants.SpeciesATP, 100, constants.MaxMetabolite},
		{constants.SpeciesADP, constants.InitialADP, constants.MaxMetabolite},
		{constants.SpeciesAMP, 10, constants.MaxMetabolite},
		{constants.SpeciesNAD, constants.InitialNAD, constants.MaxMetabolite},
		{constants.SpeciesNADH, 0, constants.MaxMetabolite},
		// Phosphate is effectively unlimited.
		{constants.SpeciesPhosphate, constants.MaxMetabolite, constants.MaxMetabolite},
		{constants.SpeciesPyruvate, 0, constants.MaxMetabolite},
		{constants.SpeciesLactate, 0, constants.MaxMetabolite},
		{constants.SpeciesGlucose6Phosphate, 0, constants.MaxMetabolite},
		{constants.SpeciesFructose6Phosphate, 0, constants.MaxMetabolite},
		{constants.SpeciesFructose16Bisphosphate, 0, constants.MaxMetabolite},
		{constants.SpeciesDihydroxyacetonePhosphate, 0, constants.MaxMetabolite},
		{constants.SpeciesGlyceraldehyde3Phosphate, 0, constants.MaxMetabolite},
		{constants.SpeciesBisphosphoglycerate13, 0, constants.MaxMetabolite},
		{constants.SpeciesPhosphoglycerate3, 0, constants.MaxMetabolite},
		{constants.SpeciesPhosphoglycerate2, 0, constants.MaxMetabolite},
		{constants.SpeciesPhosphoenolpyruvate, 0, constants.MaxMetabolite},
	}
}

// NewCytoplasm builds a cytoplasm with standard starting pools and captures
// the seeded state as the reset point.
func NewCytoplasm(log *slog.Logger) (*Cytoplasm, error) {
	store := metabolite.NewStore(log)
	if err := applySeeds(store, cytoplasmSeeds()); err != nil {
		return nil, err
	}
	return &Cytoplasm{
		store:   store,
		initial: store.Snapshot(),
	}, nil
}

// Store returns the compartment's metabolite store.
func (c *Cytoplasm) Store() *metabolite.Store { return c.store }

// Reset restores every seeded pool to its starting quantity. Pools
// registered after construction keep their current values.
func (c *Cytoplasm) Reset() error {
	return c.store.RestoreSnapshot(c.initial)
}
