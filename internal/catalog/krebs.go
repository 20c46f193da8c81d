package catalog

import (
	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/kinetics"
	"github.com/Dooders/Pyology/internal/reaction"
)

// PyruvateDehydrogenase returns the bridge reaction that decarboxylates
// pyruvate into acetyl-CoA, feeding the Krebs cycle.
func PyruvateDehydrogenase() *reaction.Reaction {
	return step("pyruvate_dehydrogenase", constants.SpeciesPyruvate,
		map[string]float64{
			constants.SpeciesPyruvate: 1,
			constants.SpeciesNAD:      1,
		},
		map[string]float64{
			constants.SpeciesAcetylCoA: 1,
			constants.SpeciesNADH:      1,
			constants.SpeciesCO2:       1,
		})
}

// KrebsSteps returns the eight cycle reactions in order, from citrate
// synthase through malate dehydrogenase. One full turn consumes an
// acetyl-CoA and regenerates the oxaloacetate it started from, releasing
// two CO2 and capturing electrons as three NADH and one FADH2 plus one GTP.
//
// The two decarboxylating dehydrogenases carry allosteric regulation:
// isocitrate dehydrogenase is cooperative (Hill coefficient 2), inhibited
// by ATP and activated by ADP; alpha-ketoglutarate dehydrogenase is
// inhibited by its products and by ATP.
func KrebsSteps() []*reaction.Reaction {
	return []*reaction.Reaction{
		step("citrate_synthase", constants.SpeciesAcetylCoA,
			map[string]float64{
				constants.SpeciesAcetylCoA:    1,
				constants.SpeciesOxaloacetate: 1,
			},
			map[string]float64{
				constants.SpeciesCitrate: 1,
			}),
		step("aconitase", constants.SpeciesCitrate,
			map[string]float64{
				constants.SpeciesCitrate: 1,
			},
			map[string]float64{
				constants.SpeciesIsocitrate: 1,
			}),
		{
			Name: "isocitrate_dehydrogenase",
			Enzyme: &kinetics.Enzyme{
				Name:            "isocitrate_dehydrogenase",
				VMax:            constants.CatalyticVMax,
				Km:              constants.CatalyticKm,
				HillCoefficient: 2,
				Inhibitors:      map[string]float64{constants.SpeciesATP: 1000},
				Activators:      map[string]float64{constants.SpeciesADP: 500},
			},
			Substrate: constants.SpeciesIsocitrate,
			Consume: map[string]float64{
				constants.SpeciesIsocitrate: 1,
				constants.SpeciesNAD:        1,
			},
			Produce: map[string]float64{
				constants.SpeciesAlphaKetoglutarate: 1,
				constants.SpeciesNADH:               1,
				constants.SpeciesCO2:                1,
			},
		},
		{
			Name: "alpha_ketoglutarate_dehydrogenase",
			Enzyme: &kinetics.Enzyme{
				Name: "alpha_ketoglutarate_dehydrogenase",
				VMax: constants.CatalyticVMax,
				Km:   constants.CatalyticKm,
				Inhibitors: map[string]float64{
					constants.SpeciesATP:         1000,
					constants.SpeciesNADH:        100,
					constants.SpeciesSuccinylCoA: 100,
				},
			},
			Substrate: constants.SpeciesAlphaKetoglutarate,
			Consume: map[string]float64{
				constants.SpeciesAlphaKetoglutarate: 1,
				constants.SpeciesNAD:                1,
			},
			Produce: map[string]float64{
				constants.SpeciesSuccinylCoA: 1,
				constants.SpeciesNADH:        1,
				constants.SpeciesCO2:         1,
			},
		},
		step("succinyl_coa_synthetase", constants.SpeciesSuccinylCoA,
			map[string]float64{
				constants.SpeciesSuccinylCoA: 1,
				constants.SpeciesGDP:         1,
				constants.SpeciesPhosphate:   1,
			},
			map[string]float64{
				constants.SpeciesSuccinate: 1,
				constants.SpeciesGTP:       1,
			}),
		step("succinate_dehydrogenase", constants.SpeciesSuccinate,
			map[string]float64{
				constants.SpeciesSuccinate: 1,
				constants.SpeciesFAD:       1,
			},
			map[string]float64{
				constants.SpeciesFumarate: 1,
				constants.SpeciesFADH2:    1,
			}),
		step("fumarase", constants.SpeciesFumarate,
			map[string]float64{
				constants.SpeciesFumarate: 1,
			},
			map[string]float64{
				constants.SpeciesMalate: 1,
			}),
		step("malate_dehydrogenase", constants.SpeciesMalate,
			map[string]float64{
				constants.SpeciesMalate: 1,
				constants.SpeciesNAD:    1,
			},
			map[string]float64{
				constants.SpeciesOxaloacetate: 1,
				constants.SpeciesNADH:         1,
			}),
	}
}
