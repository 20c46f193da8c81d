// Package pathway orchestrates multi-step metabolic pathways over a
// metabolite store: glycolysis, the Krebs cycle, and the electron transport
// chain with ATP synthase.
//
// A pathway failure aborts the remaining steps of that invocation. Mutations
// already applied are not rolled back; conservation drift introduced by an
// abort is caught by the post-hoc adenine check where one applies.
package pathway

import (
	"errors"
	"fmt"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
)

// ErrNonPositiveUnits reports a pathway invocation with zero or negative
// input units.
var ErrNonPositiveUnits = errors.New("pathway units must be positive")

// Error wraps a failure at a named step of a pathway invocation.
type Error struct {
	Pathway string
	Step    string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed at %s: %v", e.Pathway, e.Step, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// AdenineTotal sums the adenine nucleotide pools (ATP, ADP, AMP) of a store.
// All three species must be registered.
func AdenineTotal(store *metabolite.Store) (float64, error) {
	var total float64
	for _, species := range []string{
		constants.SpeciesATP,
		constants.SpeciesADP,
		constants.SpeciesAMP,
	} {
		q, err := store.Quantity(species)
		if err != nil {
			return 0, err
		}
		total += q
	}
	return total, nil
}
