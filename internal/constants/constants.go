// Package constants provides named constants used throughout the pyology codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Timekeeping constants
const (
	// GlycolysisTimeStep is the integration step used for glycolytic reactions.
	// Glycolysis runs on a finer step than the Krebs cycle because its
	// intermediate pools are small relative to their turnover.
	GlycolysisTimeStep = 0.1

	// KrebsTimeStep is the integration step used for Krebs cycle reactions.
	KrebsTimeStep = 1.0

	// DefaultTimeStep is the step used by the simulation controller loop.
	DefaultTimeStep = 0.1

	// DefaultSimulationSteps is the number of controller iterations in a
	// default run.
	DefaultSimulationSteps = 5
)

// Catalog enzyme kinetics parameters.
const (
	// CatalyticVMax is the maximal velocity assigned to pathway enzymes.
	// Saturated pathway enzymes clear a unit-scale pool inside one step,
	// so substrate availability, not kinetics, limits throughput.
	CatalyticVMax = 100.0

	// CatalyticKm is the Michaelis constant assigned to pathway enzymes.
	CatalyticKm = 0.1

	// FermentationVMax is the velocity of lactate dehydrogenase. It is kept
	// slow so NAD+ regeneration trickles instead of draining pyruvate.
	FermentationVMax = 1.0
)

// Proton stoichiometry for the electron transport chain and ATP synthase.
const (
	// ProtonsPerNADH is the number of protons pumped per NADH oxidized at
	// Complex I.
	ProtonsPerNADH = 4

	// ProtonsPerFADH2 is the number of protons pumped per FADH2 oxidized.
	// FADH2 enters at Complex II, which does not pump; the count reflects
	// downstream pumping at Complex III.
	ProtonsPerFADH2 = 2

	// ProtonsPerATP is the number of gradient protons consumed per ATP
	// synthesized.
	ProtonsPerATP = 4

	// ProtonsPerCytochrome is the number of protons pumped per reduced
	// cytochrome c oxidized at Complex IV.
	ProtonsPerCytochrome = 1

	// CytochromesPerOxygen is the number of reduced cytochrome c consumed
	// per molecular oxygen at Complex IV.
	CytochromesPerOxygen = 2
)

// Proton gradient leak parameters. The leak is logistic in the gradient:
// small below the midpoint, approaching LeakRate above it.
const (
	// LeakRate is the asymptotic proton leak per update.
	LeakRate = 0.1

	// LeakSteepness controls how sharply the leak turns on around the midpoint.
	LeakSteepness = 0.1

	// LeakMidpoint is the gradient value at which the leak reaches half of
	// LeakRate.
	LeakMidpoint = 150.0

	// MaxProtonGradient is the ceiling on accumulated gradient protons.
	MaxProtonGradient = 200.0
)

// Mitochondrial calcium handling constants.
const (
	// CalciumThreshold is the maximum calcium the mitochondrion buffers;
	// uptake beyond it is refused and returned to the caller.
	CalciumThreshold = 800.0

	// CalciumBoostFactor is the dehydrogenase activity multiplier applied
	// while buffered calcium sits at the threshold.
	CalciumBoostFactor = 1.2
)

// NADH shuttle constants. Cytosolic NADH cannot cross the inner membrane;
// shuttles move its reducing equivalents at a cost.
const (
	// ShuttleEfficiency is the fraction of shuttled reducing equivalents
	// that arrive as mitochondrial NADH.
	ShuttleEfficiency = 0.67

	// ShuttleRate is the maximum cytosolic NADH shuttled per controller step.
	ShuttleRate = 5.0
)

// Pool sizing constants used when seeding compartments.
const (
	// MaxMetabolite is the default ceiling for a metabolite pool.
	MaxMetabolite = 1000.0

	// InitialNAD is the starting NAD+ pool in each compartment.
	InitialNAD = 10.0

	// InitialOxygen is the starting molecular oxygen pool.
	InitialOxygen = 1000.0

	// InitialADP is the starting ADP pool.
	InitialADP = 100.0

	// InitialUbiquinone is the starting oxidized ubiquinone pool.
	InitialUbiquinone = 100.0

	// InitialCytochromeC is the starting oxidized cytochrome c pool.
	InitialCytochromeC = 100.0
)

// Conservation bookkeeping constants.
const (
	// AdenineTolerance is the permitted drift in total adenine nucleotides
	// (ATP+ADP+AMP) across a pathway invocation before the compensating
	// adjustment fires.
	AdenineTolerance = 1e-6

	// EnergyTolerance is the permitted drift in total free energy across a
	// Krebs invocation before a warning is logged.
	EnergyTolerance = 1e-6
)

// Feedback regulation constants.
const (
	// ADPActivationScale divides the ADP level in the phosphofructokinase
	// feedback term: activity is scaled by 1 + ADP/ADPActivationScale.
	ADPActivationScale = 500.0
)

// Cross-compartment transfer constants used by the simulation controller.
const (
	// LowADPThreshold is the mitochondrial ADP level below which the
	// controller pulls ADP in from the cytosol.
	LowADPThreshold = 10.0

	// ADPRefillAmount is the most ADP moved into the mitochondrion per
	// refill, bounded by what the cytosol holds.
	ADPRefillAmount = 50.0

	// MaxMitochondrialATP is the matrix ATP level above which the surplus
	// is exported to the cytosol.
	MaxMitochondrialATP = 100.0

	// MaxCytoplasmicATP caps cytosolic ATP; export stops at this level.
	MaxCytoplasmicATP = 500.0

	// MaxMitochondrialNADH caps matrix NADH under per-step limit
	// enforcement.
	MaxMitochondrialNADH = 50.0

	// MaxCytoplasmicNADH caps cytosolic NADH under per-step limit
	// enforcement.
	MaxCytoplasmicNADH = 100.0
)

// DefaultUnit is the concentration unit assigned to metabolites that do not
// specify one.
const DefaultUnit = "mM"
