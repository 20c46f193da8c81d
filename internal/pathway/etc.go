package pathway

import (
	"math"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
)

// ElectronTransportChain oxidizes NADH and FADH2 through the four
// respiratory complexes, pumping protons into the gradient pool, then
// applies the logistic membrane leak.
//
// Each complex moves the minimum of its two reactant pools, so the chain
// degrades gracefully as carriers run out. Pumping is capped by the
// gradient pool's ceiling; protons that do not fit are not pumped.
type ElectronTransportChain struct {
	// PumpPerNADH is the protons pumped per NADH oxidized at Complex I.
	PumpPerNADH float64

	// PumpPerUbiquinol is the protons pumped per ubiquinol oxidized at
	// Complex III. Electrons from FADH2 enter at Complex II and pump
	// nothing until here.
	PumpPerUbiquinol float64

	// PumpPerCytochrome is the protons pumped per reduced cytochrome c
	// oxidized at Complex IV.
	PumpPerCytochrome float64
}

// NewElectronTransportChain builds a chain with the standard pumping
// stoichiometry.
func NewElectronTransportChain() *ElectronTransportChain {
	return &ElectronTransportChain{
		PumpPerNADH:       constants.ProtonsPerNADH,
		PumpPerUbiquinol:  constants.ProtonsPerFADH2,
		PumpPerCytochrome: constants.ProtonsPerCytochrome,
	}
}

// ProtonLeak returns the protons lost through the membrane at the given
// gradient. The leak is logistic: negligible well below the midpoint and
// approaching the asymptotic rate above it, non-decreasing in the gradient.
func ProtonLeak(gradient float64) float64 {
	return constants.LeakRate / (1 + math.Exp(-constants.LeakSteepness*(gradient-constants.LeakMidpoint)))
}

// Run advances each complex once in chain order and applies the membrane
// leak to the resulting gradient.
func (e *ElectronTransportChain) Run(store *metabolite.Store) error {
	if err := e.complexI(store); err != nil {
		return err
	}
	if err := e.complexII(store); err != nil {
		return err
	}
	if err := e.complexIII(store); err != nil {
		return err
	}
	if err := e.complexIV(store); err != nil {
		return err
	}
	return e.applyLeak(store)
}

// complexI oxidizes NADH, reducing ubiquinone and pumping protons.
func (e *ElectronTransportChain) complexI(store *metabolite.Store) error {
	amount, err := transferable(store, constants.SpeciesNADH, constants.SpeciesUbiquinone, 1)
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "complex_i", Err: err}
	}
	if amount <= 0 {
		return nil
	}
	err = exchange(store,
		map[string]float64{
			constants.SpeciesNADH:       amount,
			constants.SpeciesUbiquinone: amount,
		},
		map[string]float64{
			constants.SpeciesNAD:       amount,
			constants.SpeciesUbiquinol: amount,
		})
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "complex_i", Err: err}
	}
	return e.pump(store, "complex_i", e.PumpPerNADH*amount)
}

// complexII oxidizes FADH2, reducing ubiquinone. No protons are pumped.
func (e *ElectronTransportChain) complexII(store *metabolite.Store) error {
	amount, err := transferable(store, constants.SpeciesFADH2, constants.SpeciesUbiquinone, 1)
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "complex_ii", Err: err}
	}
	if amount <= 0 {
		return nil
	}
	err = exchange(store,
		map[string]float64{
			constants.SpeciesFADH2:      amount,
			constants.SpeciesUbiquinone: amount,
		},
		map[string]float64{
			constants.SpeciesFAD:       amount,
			constants.SpeciesUbiquinol: amount,
		})
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "complex_ii", Err: err}
	}
	return nil
}

// complexIII oxidizes ubiquinol, reducing cytochrome c and pumping protons.
func (e *ElectronTransportChain) complexIII(store *metabolite.Store) error {
	amount, err := transferable(store, constants.SpeciesUbiquinol, constants.SpeciesCytochromeCOxidized, 1)
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "complex_iii", Err: err}
	}
	if amount <= 0 {
		return nil
	}
	err = exchange(store,
		map[string]float64{
			constants.SpeciesUbiquinol:           amount,
			constants.SpeciesCytochromeCOxidized: amount,
		},
		map[string]float64{
			constants.SpeciesUbiquinone:         amount,
			constants.SpeciesCytochromeCReduced: amount,
		})
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "complex_iii", Err: err}
	}
	return e.pump(store, "complex_iii", e.PumpPerUbiquinol*amount)
}

// complexIV oxidizes reduced cytochrome c onto molecular oxygen, two
// cytochromes per O2, pumping protons.
func (e *ElectronTransportChain) complexIV(store *metabolite.Store) error {
	amount, err := transferable(store, constants.SpeciesCytochromeCReduced, constants.SpeciesOxygen, constants.CytochromesPerOxygen)
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "complex_iv", Err: err}
	}
	if amount <= 0 {
		return nil
	}
	err = exchange(store,
		map[string]float64{
			constants.SpeciesCytochromeCReduced: amount,
			constants.SpeciesOxygen:             amount / constants.CytochromesPerOxygen,
		},
		map[string]float64{
			constants.SpeciesCytochromeCOxidized: amount,
		})
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "complex_iv", Err: err}
	}
	return e.pump(store, "complex_iv", e.PumpPerCytochrome*amount)
}

// pump adds protons to the gradient pool, dropping whatever exceeds the
// pool's ceiling.
func (e *ElectronTransportChain) pump(store *metabolite.Store, step string, protons float64) error {
	if protons <= 0 {
		return nil
	}
	gradient, ok := store.Get(constants.SpeciesProtonGradient)
	if !ok {
		return &Error{
			Pathway: "electron_transport_chain",
			Step:    step,
			Err:     &metabolite.UnknownMetaboliteError{Name: constants.SpeciesProtonGradient},
		}
	}
	headroom := gradient.MaxQuantity() - gradient.Quantity()
	pumped := math.Min(protons, headroom)
	if pumped <= 0 {
		return nil
	}
	if err := store.ChangeQuantity(constants.SpeciesProtonGradient, pumped); err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: step, Err: err}
	}
	return nil
}

// applyLeak reduces the gradient by the logistic leak, flooring at zero.
func (e *ElectronTransportChain) applyLeak(store *metabolite.Store) error {
	gradient, err := store.Quantity(constants.SpeciesProtonGradient)
	if err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "proton_leak", Err: err}
	}
	leak := ProtonLeak(gradient)
	next := gradient - leak
	if next < 0 {
		next = 0
	}
	if err := store.SetQuantity(constants.SpeciesProtonGradient, next); err != nil {
		return &Error{Pathway: "electron_transport_chain", Step: "proton_leak", Err: err}
	}
	store.Logger().Debug("electron transport complete",
		"gradient", next,
		"leaked", leak,
	)
	return nil
}

// SynthesizeATP spends the proton gradient through ATP synthase. Whole ATP
// units only: floor(gradient / protons-per-ATP), further bounded by the ADP
// on hand. Spent protons are deducted and the remainder stays in the
// gradient for the next update.
func SynthesizeATP(store *metabolite.Store) (float64, error) {
	gradient, err := store.Quantity(constants.SpeciesProtonGradient)
	if err != nil {
		return 0, &Error{Pathway: "electron_transport_chain", Step: "atp_synthase", Err: err}
	}
	adp, err := store.Quantity(constants.SpeciesADP)
	if err != nil {
		return 0, &Error{Pathway: "electron_transport_chain", Step: "atp_synthase", Err: err}
	}

	synthesized := math.Min(math.Floor(gradient/constants.ProtonsPerATP), adp)
	if synthesized <= 0 {
		return 0, nil
	}

	err = exchange(store,
		map[string]float64{constants.SpeciesADP: synthesized},
		map[string]float64{constants.SpeciesATP: synthesized})
	if err != nil {
		return 0, &Error{Pathway: "electron_transport_chain", Step: "atp_synthase", Err: err}
	}
	if err := store.ChangeQuantity(constants.SpeciesProtonGradient, -synthesized*constants.ProtonsPerATP); err != nil {
		return 0, &Error{Pathway: "electron_transport_chain", Step: "atp_synthase", Err: err}
	}

	store.Logger().Debug("atp synthesized",
		"atp", synthesized,
		"protons_spent", synthesized*constants.ProtonsPerATP,
	)
	return synthesized, nil
}

// transferable returns how much of the donor pool can move given the
// acceptor pool, with the acceptor weighted by ratio donors per acceptor.
func transferable(store *metabolite.Store, donor, acceptor string, ratio float64) (float64, error) {
	d, err := store.Quantity(donor)
	if err != nil {
		return 0, err
	}
	a, err := store.Quantity(acceptor)
	if err != nil {
		return 0, err
	}
	return math.Min(d, a*ratio), nil
}

// exchange applies a consume batch then a produce batch.
func exchange(store *metabolite.Store, consume, produce map[string]float64) error {
	if err := store.Consume(consume); err != nil {
		return err
	}
	return store.Produce(produce)
}
