package metabolite

import (
	"strings"

	"github.com/Dooders/Pyology/internal/constants"
)

// freeEnergies maps canonical species names to fixed free-energy coefficients
// (kJ/mol scale, educational values). A metabolite's energy contribution is
// quantity times its coefficient.
var freeEnergies = map[string]float64{
	constants.SpeciesATP:                      50,
	constants.SpeciesADP:                      30,
	constants.SpeciesAMP:                      10,
	constants.SpeciesGTP:                      50,
	constants.SpeciesNADH:                     158,
	constants.SpeciesFADH2:                    105,
	constants.SpeciesAcetylCoA:                31,
	constants.SpeciesProtonGradient:           5,
	constants.SpeciesGlucose:                  686,
	constants.SpeciesGlucose6Phosphate:        916,
	constants.SpeciesFructose6Phosphate:       916,
	constants.SpeciesFructose16Bisphosphate:   1146,
	constants.SpeciesGlyceraldehyde3Phosphate: 573,
	constants.SpeciesBisphosphoglycerate13:    803,
	constants.SpeciesPhosphoglycerate3:        573,
	constants.SpeciesPhosphoglycerate2:        573,
	constants.SpeciesPhosphoenolpyruvate:      803,
	constants.SpeciesPyruvate:                 343,
}

// FreeEnergy returns the free-energy coefficient for a species.
// Species without a table entry carry a unit coefficient.
func FreeEnergy(name string) float64 {
	if e, ok := freeEnergies[strings.ToLower(name)]; ok {
		return e
	}
	return 1
}
