package simulation

import (
	"math"
	"testing"

	"github.com/Dooders/Pyology/internal/metabolite"
	"github.com/Dooders/Pyology/internal/organelle"
)

// AssertStatus asserts the run finished with the given status.
func AssertStatus(t *testing.T, result *RunResult, want string) {
	t.Helper()
	if result.Status != want {
		t.Errorf("AssertStatus: run %s status = %q, want %q", result.RunID, result.Status, want)
	}
}

// AssertNetATPAtLeast asserts the run produced at least the given net ATP.
func AssertNetATPAtLeast(t *testing.T, result *RunResult, min float64) {
	t.Helper()
	if result.NetATP < min {
		t.Errorf("AssertNetATPAtLeast: net ATP %.6f < %.6f", result.NetATP, min)
	}
}

// AssertQuantityNear asserts a pool quantity within tolerance of want.
func AssertQuantityNear(t *testing.T, store *metabolite.Store, species string, want, tolerance float64) {
	t.Helper()
	quantity, err := store.Quantity(species)
	if err != nil {
		t.Errorf("AssertQuantityNear: Quantity(%s): %v", species, err)
		return
	}
	if math.Abs(quantity-want) > tolerance {
		t.Errorf("AssertQuantityNear: %s = %.6f, want %.6f (tolerance %.6f)", species, quantity, want, tolerance)
	}
}

// AssertEventRecorded asserts at least one event of the given kind was
// recorded against the run.
func AssertEventRecorded(t *testing.T, result *RunResult, kind string) {
	t.Helper()
	if CountEvents(result, kind) == 0 {
		t.Errorf("AssertEventRecorded: no %s event in run %s (%d events total)", kind, result.RunID, len(result.Events))
	}
}

// AssertNoEvents asserts the run recorded no events at all.
func AssertNoEvents(t *testing.T, result *RunResult) {
	t.Helper()
	for _, event := range result.Events {
		t.Errorf("AssertNoEvents: unexpected %s event at step %d: %s", event.Kind, event.Step, event.Message)
	}
}

// AssertPoolsWithinBounds asserts every pool in both compartments sits
// inside its own [min, max] bounds.
func AssertPoolsWithinBounds(t *testing.T, cell *organelle.Cell) {
	t.Helper()
	compartments := []struct {
		name  string
		store *metabolite.Store
	}{
		{"cytoplasm", cell.Cytoplasm.Store()},
		{"mitochondrion", cell.Mitochondrion.Store()},
	}
	for _, c := range compartments {
		for _, species := range c.store.Names() {
			m, ok := c.store.Get(species)
			if !ok {
				continue
			}
			if q := m.Quantity(); q < m.MinQuantity() || q > m.MaxQuantity() {
				t.Errorf("AssertPoolsWithinBounds: %s %s = %.6f outside [%.6f, %.6f]",
					c.name, species, q, m.MinQuantity(), m.MaxQuantity())
			}
		}
	}
}

// AssertAdenineTotal asserts the cell-wide ATP+ADP+AMP total within
// tolerance of want.
func AssertAdenineTotal(t *testing.T, cell *organelle.Cell, want, tolerance float64) {
	t.Helper()
	total, err := cellAdenineTotal(cell)
	if err != nil {
		t.Errorf("AssertAdenineTotal: %v", err)
		return
	}
	if math.Abs(total-want) > tolerance {
		t.Errorf("AssertAdenineTotal: total %.6f, want %.6f (tolerance %.6f)", total, want, tolerance)
	}
}
