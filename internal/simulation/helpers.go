package simulation

import (
	"testing"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
)

// SeedQuantities sets each named pool to the given quantity, registering
// missing species at the default ceiling first.
func SeedQuantities(store *metabolite.Store, quantities map[string]float64) error {
	for species, quantity := range quantities {
		if !store.Exists(species) {
			if err := store.Register(species, 0, constants.MaxMetabolite, nil); err != nil {
				return err
			}
		}
		if err := store.SetQuantity(species, quantity); err != nil {
			return err
		}
	}
	return nil
}

// MustQuantity reads a pool quantity, failing the test on unknown species.
func MustQuantity(t *testing.T, store *metabolite.Store, species string) float64 {
	t.Helper()
	quantity, err := store.Quantity(species)
	if err != nil {
		t.Fatalf("MustQuantity(%s): %v", species, err)
	}
	return quantity
}

// CountEvents counts the run's events of the given kind.
func CountEvents(result *RunResult, kind string) int {
	count := 0
	for _, event := range result.Events {
		if event.Kind == kind {
			count++
		}
	}
	return count
}
