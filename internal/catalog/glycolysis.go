package catalog

import (
	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/kinetics"
	"github.com/Dooders/Pyology/internal/reaction"
)

// GlycolysisInvestment returns the five energy investment phase reactions,
// in pathway order. One pass converts a glucose into two triose phosphates
// at a cost of two ATP.
func GlycolysisInvestment() []*reaction.Reaction {
	return []*reaction.Reaction{
		step("hexokinase", constants.SpeciesGlucose,
			map[string]float64{
				constants.SpeciesGlucose: 1,
				constants.SpeciesATP:     1,
			},
			map[string]float64{
				constants.SpeciesGlucose6Phosphate: 1,
				constants.SpeciesADP:               1,
			}),
		step("phosphoglucose_isomerase", constants.SpeciesGlucose6Phosphate,
			map[string]float64{
				constants.SpeciesGlucose6Phosphate: 1,
			},
			map[string]float64{
				constants.SpeciesFructose6Phosphate: 1,
			}),
		step("phosphofructokinase", constants.SpeciesFructose6Phosphate,
			map[string]float64{
				constants.SpeciesFructose6Phosphate: 1,
				constants.SpeciesATP:                1,
			},
			map[string]float64{
				constants.SpeciesFructose16Bisphosphate: 1,
				constants.SpeciesADP:                    1,
			}),
		step("aldolase", constants.SpeciesFructose16Bisphosphate,
			map[string]float64{
				constants.SpeciesFructose16Bisphosphate: 1,
			},
			map[string]float64{
				constants.SpeciesDihydroxyacetonePhosphate: 1,
				constants.SpeciesGlyceraldehyde3Phosphate:  1,
			}),
		step("triose_phosphate_isomerase", constants.SpeciesDihydroxyacetonePhosphate,
			map[string]float64{
				constants.SpeciesDihydroxyacetonePhosphate: 1,
			},
			map[string]float64{
				constants.SpeciesGlyceraldehyde3Phosphate: 1,
			}),
	}
}

// GlycolysisYield returns the five energy yield phase reactions, in pathway
// order. One pass converts a glyceraldehyde 3-phosphate into a pyruvate,
// yielding two ATP and one NADH; a glucose feeds two passes.
func GlycolysisYield() []*reaction.Reaction {
	return []*reaction.Reaction{
		step("glyceraldehyde_3_phosphate_dehydrogenase", constants.SpeciesGlyceraldehyde3Phosphate,
			map[string]float64{
				constants.SpeciesGlyceraldehyde3Phosphate: 1,
				constants.SpeciesNAD:                      1,
				constants.SpeciesPhosphate:                1,
			},
			map[string]float64{
				constants.SpeciesBisphosphoglycerate13: 1,
				constants.SpeciesNADH:                  1,
			}),
		step("phosphoglycerate_kinase", constants.SpeciesBisphosphoglycerate13,
			map[string]float64{
				constants.SpeciesBisphosphoglycerate13: 1,
				constants.SpeciesADP:                   1,
			},
			map[string]float64{
				constants.SpeciesPhosphoglycerate3: 1,
				constants.SpeciesATP:               1,
			}),
		step("phosphoglycerate_mutase", constants.SpeciesPhosphoglycerate3,
			map[string]float64{
				constants.SpeciesPhosphoglycerate3: 1,
			},
			map[string]float64{
				constants.SpeciesPhosphoglycerate2: 1,
			}),
		step("enolase", constants.SpeciesPhosphoglycerate2,
			map[string]float64{
				constants.SpeciesPhosphoglycerate2: 1,
			},
			map[string]float64{
				constants.SpeciesPhosphoenolpyruvate: 1,
			}),
		step("pyruvate_kinase", constants.SpeciesPhosphoenolpyruvate,
			map[string]float64{
				constants.SpeciesPhosphoenolpyruvate: 1,
				constants.SpeciesADP:                 1,
			},
			map[string]float64{
				constants.SpeciesPyruvate: 1,
				constants.SpeciesATP:      1,
			}),
	}
}

// LactateDehydrogenase returns the fermentation reaction that regenerates
// NAD+ from pyruvate. Its velocity is deliberately low so it tops up NAD+
// without competing with pyruvate export.
func LactateDehydrogenase() *reaction.Reaction {
	return &reaction.Reaction{
		Name: "lactate_dehydrogenase",
		Enzyme: &kinetics.Enzyme{
			Name: "lactate_dehydrogenase",
			VMax: constants.FermentationVMax,
			Km:   constants.CatalyticKm,
		},
		Substrate: constants.SpeciesPyruvate,
		Consume: map[string]float64{
			constants.SpeciesPyruvate: 1,
			constants.SpeciesNADH:     1,
		},
		Produce: map[string]float64{
			constants.SpeciesLactate: 1,
			constants.SpeciesNAD:     1,
		},
	}
}
