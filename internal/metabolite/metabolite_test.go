package metabolite

import (
	"errors"
	"testing"
)

func TestAdjust_WithinBounds(t *testing.T) {
	m := &Metabolite{Name: "atp", quantity: 5, max: 10}

	if err := m.Adjust(3); err != nil {
		t.Fatalf("Adjust(3): %v", err)
	}
	if m.Quantity() != 8 {
		t.Errorf("quantity = %g, want 8", m.Quantity())
	}
	if err := m.Adjust(-8); err != nil {
		t.Fatalf("Adjust(-8): %v", err)
	}
	if m.Quantity() != 0 {
		t.Errorf("quantity = %g, want 0", m.Quantity())
	}
}

func TestAdjust_RejectsOutOfBounds(t *testing.T) {
	m := &Metabolite{Name: "atp", quantity: 5, max: 10}

	err := m.Adjust(6)
	var qe *QuantityError
	if !errors.As(err, &qe) {
		t.Fatalf("Adjust(6) error = %v, want QuantityError", err)
	}
	if qe.Attempted != 11 {
		t.Errorf("attempted = %g, want 11", qe.Attempted)
	}
	if m.Quantity() != 5 {
		t.Errorf("quantity = %g, want 5 after rejected adjust", m.Quantity())
	}

	if err := m.Adjust(-5.000001); !errors.As(err, &qe) {
		t.Fatalf("Adjust(-5.000001) error = %v, want QuantityError", err)
	}
	if m.Quantity() != 5 {
		t.Errorf("quantity = %g, want 5 after rejected adjust", m.Quantity())
	}
}

func TestAdjust_SnapsWithinEpsilonOfBounds(t *testing.T) {
	// Rate-limited consumption routinely lands one ulp past exact
	// depletion; that is a snap to the bound, not a violation.
	m := &Metabolite{Name: "glucose", quantity: 5, max: 10}
	if err := m.Adjust(-(5 + 1e-12)); err != nil {
		t.Fatalf("Adjust just past empty: %v", err)
	}
	if m.Quantity() != 0 {
		t.Errorf("quantity = %g, want exactly 0", m.Quantity())
	}

	m = &Metabolite{Name: "glucose", quantity: 5, max: 10}
	if err := m.Adjust(5 + 1e-12); err != nil {
		t.Fatalf("Adjust just past full: %v", err)
	}
	if m.Quantity() != 10 {
		t.Errorf("quantity = %g, want exactly 10", m.Quantity())
	}
}

func TestSet_Bounds(t *testing.T) {
	m := &Metabolite{Name: "nad", quantity: 5, max: 10}

	if err := m.Set(7); err != nil {
		t.Fatalf("Set(7): %v", err)
	}
	if m.Quantity() != 7 {
		t.Errorf("quantity = %g, want 7", m.Quantity())
	}

	var qe *QuantityError
	if err := m.Set(12); !errors.As(err, &qe) {
		t.Fatalf("Set(12) error = %v, want QuantityError", err)
	}
	if m.Quantity() != 7 {
		t.Errorf("quantity = %g, want 7 after rejected set", m.Quantity())
	}
}

func TestReset_ReturnsToMinimumRegardlessOfHistory(t *testing.T) {
	m := &Metabolite{Name: "nadh", quantity: 9, min: 2, max: 10}

	m.Reset()
	if m.Quantity() != 2 {
		t.Errorf("quantity = %g, want 2 after reset", m.Quantity())
	}

	if err := m.Adjust(6); err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	m.Reset()
	m.Reset()
	if m.Quantity() != 2 {
		t.Errorf("quantity = %g, want 2 after repeated reset", m.Quantity())
	}
}

func TestSetOnChange_FiresOnEveryMutation(t *testing.T) {
	m := &Metabolite{Name: "atp", quantity: 5, max: 10}
	calls := 0
	m.SetOnChange(func(*Metabolite) { calls++ })

	if err := m.Adjust(1); err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if err := m.Set(3); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m.Reset()
	if calls != 3 {
		t.Errorf("hook fired %d times, want 3", calls)
	}

	// A rejected mutation does not fire the hook.
	if err := m.Adjust(100); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
	if calls != 3 {
		t.Errorf("hook fired %d times after rejected adjust, want 3", calls)
	}

	m.SetOnChange(nil)
	if err := m.Adjust(1); err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if calls != 3 {
		t.Errorf("hook fired %d times after removal, want 3", calls)
	}
}

func TestPercentFilled(t *testing.T) {
	m := &Metabolite{Name: "atp", quantity: 5, max: 10}
	if got := m.PercentFilled(); got != 50 {
		t.Errorf("PercentFilled = %g, want 50", got)
	}

	empty := &Metabolite{Name: "void"}
	if got := empty.PercentFilled(); got != 0 {
		t.Errorf("PercentFilled with zero max = %g, want 0", got)
	}
}

func TestEnergy_UsesSpeciesCoefficient(t *testing.T) {
	atp := &Metabolite{Name: "atp", quantity: 2, max: 10}
	if got := atp.Energy(); got != 100 {
		t.Errorf("ATP energy = %g, want 100", got)
	}

	// Species without a coefficient contribute their raw quantity.
	citrate := &Metabolite{Name: "citrate", quantity: 3, max: 10}
	if got := citrate.Energy(); got != 3 {
		t.Errorf("citrate energy = %g, want 3", got)
	}
}

func TestState_SelectsAttributes(t *testing.T) {
	m := &Metabolite{Name: "atp", Label: "ATP", Unit: "mM", quantity: 5, max: 10}

	state := m.State("quantity", "unit", "voltage")
	if got := state["quantity"]; got != 5.0 {
		t.Errorf("state quantity = %v, want 5", got)
	}
	if got := state["unit"]; got != "mM" {
		t.Errorf("state unit = %v, want mM", got)
	}
	if _, ok := state["voltage"]; ok {
		t.Error("unknown attribute should be ignored")
	}
}
