// Package organelle models cellular compartments as seeded metabolite
// stores. A compartment owns its store, remembers the seeded state for
// reset, and layers compartment-specific behavior (calcium buffering in the
// mitochondrion) on top of the shared store semantics rather than
// re-implementing them.
package organelle

import (
	"github.com/Dooders/Pyology/internal/metabolite"
)

// seed is one row of a compartment's initial pool table.
type seed struct {
	name string
	qty  float64
	max  float64
}

func applySeeds(store *metabolite.Store, seeds []seed) error {
	for _, s := range seeds {
		if err := store.Register(s.name, s.qty, s.max, nil); err != nil {
			return err
		}
	}
	return nil
}
