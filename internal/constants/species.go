package constants

// Canonical metabolite species names. All store lookups lower-case their
// input, so these are the exact map keys; using the constants keeps catalog,
// pathway, and seeding code in agreement.
const (
	SpeciesGlucose                   = "glucose"
	SpeciesATP                       = "atp"
	SpeciesADP                       = "adp"
	SpeciesAMP                       = "amp"
	SpeciesGTP                       = "gtp"
	SpeciesGDP                       = "gdp"
	SpeciesNAD                       = "nad"
	SpeciesNADH                      = "nadh"
	SpeciesFAD                       = "fad"
	SpeciesFADH2                     = "fadh2"
	SpeciesPhosphate                 = "pi"
	SpeciesGlucose6Phosphate         = "glucose_6_phosphate"
	SpeciesFructose6Phosphate        = "fructose_6_phosphate"
	SpeciesFructose16Bisphosphate    = "fructose_1_6_bisphosphate"
	SpeciesDihydroxyacetonePhosphate = "dihydroxyacetone_phosphate"
	SpeciesGlyceraldehyde3Phosphate  = "glyceraldehyde_3_phosphate"
	SpeciesBisphosphoglycerate13     = "bisphosphoglycerate_1_3"
	SpeciesPhosphoglycerate3         = "phosphoglycerate_3"
	SpeciesPhosphoglycerate2         = "phosphoglycerate_2"
	SpeciesPhosphoenolpyruvate       = "phosphoenolpyruvate"
	SpeciesPyruvate                  = "pyruvate"
	SpeciesLactate                   = "lactate"
	SpeciesAcetylCoA                 = "acetyl_coa"
	SpeciesOxaloacetate              = "oxaloacetate"
	SpeciesCitrate                   = "citrate"
	SpeciesIsocitrate                = "isocitrate"
	SpeciesAlphaKetoglutarate        = "alpha_ketoglutarate"
	SpeciesSuccinylCoA               = "succinyl_coa"
	SpeciesSuccinate                 = "succinate"
	SpeciesFumarate                  = "fumarate"
	SpeciesMalate                    = "malate"
	SpeciesCO2                       = "co2"
	SpeciesUbiquinone                = "ubiquinone"
	SpeciesUbiquinol                 = "ubiquinol"
	SpeciesCytochromeCOxidized       = "cytochrome_c_oxidized"
	SpeciesCytochromeCReduced        = "cytochrome_c_reduced"
	SpeciesOxygen                    = "oxygen"
	SpeciesProtonGradient            = "proton_gradient"
)

// QuantityEpsilon is the tolerance applied to metabolite bound checks.
// Rate-limited decrements can land within one floating-point ulp of a bound;
// results inside the tolerance are snapped to the bound instead of rejected.
// Semantic violations are orders of magnitude larger than this.
const QuantityEpsilon = 1e-9
