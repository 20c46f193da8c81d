// Package reaction binds an enzyme to a stoichiometric consume/produce map
// and executes the rate-limiting step algorithm: throughput is bounded by
// whichever is scarcest, the kinetic rate or any single consumed substrate,
// and the store is updated atomically.
package reaction

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dooders/Pyology/internal/kinetics"
	"github.com/Dooders/Pyology/internal/metabolite"
)

// ErrNegativeTimeStep reports a negative integration step. It is a
// programming-contract violation, never retried.
var ErrNegativeTimeStep = errors.New("time step cannot be negative")

// Error wraps a failure during a single reaction execution.
type Error struct {
	Reaction string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("reaction %q: %v", e.Reaction, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Reaction is a stateless binding of an enzyme to stoichiometry. Each
// Execute call is a pure function of (enzyme parameters, store snapshot,
// time step) plus the store mutation it applies.
type Reaction struct {
	Name string
	// Enzyme supplies the kinetic rate law. Shared across reactions.
	Enzyme *kinetics.Enzyme
	// Substrate names the species whose concentration drives the rate law.
	Substrate string
	// Consume maps species to stoichiometric coefficients decremented per
	// unit of reaction progress.
	Consume map[string]float64
	// Produce maps species to coefficients incremented per unit of progress.
	Produce map[string]float64
}

// Execute runs the reaction against the store for one time step and returns
// the realized rate.
//
// The actual rate is the minimum over the candidate limiting factors: the
// kinetic rate scaled by the time step, and quantity/coefficient for every
// consumed substrate. The minimum guarantees no consumed pool is driven
// below its floor. All factors tied at the minimum are reported in the
// trace record; there is no single-winner tie-break.
func (r *Reaction) Execute(store *metabolite.Store, timeStep float64) (float64, error) {
	if timeStep < 0 {
		return 0, ErrNegativeTimeStep
	}

	levels, err := r.snapshot(store)
	if err != nil {
		return 0, &Error{Reaction: r.Name, Err: err}
	}

	rate := r.Enzyme.RateFor(r.Substrate, levels[r.Substrate], levels)

	factors := map[string]float64{"reaction_rate": rate * timeStep}
	for species, coeff := range r.Consume {
		if coeff > 0 {
			factors[species+"_conc"] = levels[species] / coeff
		}
	}

	actual, binding := limiting(factors)

	store.Logger().Debug("reaction rate resolved",
		"reaction", r.Name,
		"kinetic_rate", rate,
		"actual_rate", actual,
		"limited_by", binding,
	)

	if err := store.Consume(scaled(r.Consume, actual)); err != nil {
		return 0, &Error{Reaction: r.Name, Err: err}
	}
	if err := store.Produce(scaled(r.Produce, actual)); err != nil {
		return 0, &Error{Reaction: r.Name, Err: err}
	}
	return actual, nil
}

// snapshot reads the concentration of every species the execution touches.
// Consumed species, the rate-law substrate, and per-substrate Km entries are
// strict: a name the store does not know aborts the reaction. Inhibitor and
// activator species are lenient: a regulator the compartment does not track
// contributes a concentration of zero.
func (r *Reaction) snapshot(store *metabolite.Store) (map[string]float64, error) {
	levels := make(map[string]float64, len(r.Consume)+len(r.Enzyme.KmBySubstrate)+1)

	add := func(species string) error {
		if _, ok := levels[species]; ok {
			return nil
		}
		q, err := store.Quantity(species)
		if err != nil {
			return err
		}
		levels[species] = q
		return nil
	}

	if r.Substrate != "" {
		if err := add(r.Substrate); err != nil {
			return nil, err
		}
	}
	for species := range r.Consume {
		if err := add(species); err != nil {
			return nil, err
		}
	}
	for species := range r.Enzyme.KmBySubstrate {
		if err := add(species); err != nil {
			return nil, err
		}
	}
	for species := range r.Enzyme.Inhibitors {
		r.addRegulator(store, levels, species)
	}
	for species := range r.Enzyme.Activators {
		r.addRegulator(store, levels, species)
	}
	return levels, nil
}

func (r *Reaction) addRegulator(store *metabolite.Store, levels map[string]float64, species string) {
	if _, ok := levels[species]; ok {
		return
	}
	if m, ok := store.Get(species); ok {
		levels[species] = m.Quantity()
	}
}

// limiting returns the smallest factor value and the sorted names of every
// factor tied at that value.
func limiting(factors map[string]float64) (float64, []string) {
	first := true
	var minVal float64
	for _, v := range factors {
		if first || v < minVal {
			minVal = v
			first = false
		}
	}

	var binding []string
	for name, v := range factors {
		if v == minVal {
			binding = append(binding, name)
		}
	}
	sort.Strings(binding)
	return minVal, binding
}

// scaled multiplies every coefficient by the realized rate.
func scaled(coeffs map[string]float64, rate float64) map[string]float64 {
	amounts := make(map[string]float64, len(coeffs))
	for species, coeff := range coeffs {
		amounts[species] = coeff * rate
	}
	return amounts
}
