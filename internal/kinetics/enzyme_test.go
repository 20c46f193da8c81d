package kinetics

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRate_MichaelisMentenMidpoint(t *testing.T) {
	e := &Enzyme{Name: "hexokinase", VMax: 10, Km: 5}

	// At S = Km the rate is half of Vmax.
	if got := e.Rate(5, nil); got != 5 {
		t.Errorf("rate at Km = %g, want 5", got)
	}
	if got := e.Rate(0, nil); got != 0 {
		t.Errorf("rate at zero substrate = %g, want 0", got)
	}
	if got := e.Rate(-1, nil); got != 0 {
		t.Errorf("rate at negative substrate = %g, want 0", got)
	}
}

func TestRate_SaturatesTowardVMax(t *testing.T) {
	e := &Enzyme{Name: "hexokinase", VMax: 10, Km: 5}

	prev := 0.0
	for _, s := range []float64{1, 5, 20, 100, 1000} {
		rate := e.Rate(s, nil)
		if rate <= prev {
			t.Errorf("rate(%g) = %g, want above %g", s, rate, prev)
		}
		if rate >= e.VMax {
			t.Errorf("rate(%g) = %g, want below Vmax %g", s, rate, e.VMax)
		}
		prev = rate
	}
}

func TestRateFor_HonorsPerSubstrateKm(t *testing.T) {
	e := &Enzyme{
		Name:          "phosphofructokinase",
		VMax:          10,
		Km:            5,
		KmBySubstrate: map[string]float64{"fructose_6_phosphate": 1},
	}

	if got := e.KmFor("fructose_6_phosphate"); got != 1 {
		t.Errorf("KmFor(f6p) = %g, want 1", got)
	}
	if got := e.KmFor("atp"); got != 5 {
		t.Errorf("KmFor(atp) = %g, want 5", got)
	}
	if got := e.RateFor("fructose_6_phosphate", 1, nil); got != 5 {
		t.Errorf("rate with override = %g, want 5", got)
	}
	if got := e.RateFor("atp", 1, nil); !approx(got, 10.0/6) {
		t.Errorf("rate with fallback Km = %g, want %g", got, 10.0/6)
	}
}

func TestRate_HillCooperativity(t *testing.T) {
	mm := &Enzyme{Name: "idh", VMax: 10, Km: 2}
	hill := &Enzyme{Name: "idh", VMax: 10, Km: 2, HillCoefficient: 2}

	// Both forms meet at S = Km.
	if got := hill.Rate(2, nil); got != 5 {
		t.Errorf("cooperative rate at Km = %g, want 5", got)
	}
	// Cooperativity suppresses the rate below Km and boosts it above.
	if h, m := hill.Rate(1, nil), mm.Rate(1, nil); h >= m {
		t.Errorf("below Km: cooperative %g, hyperbolic %g, want cooperative lower", h, m)
	}
	if h, m := hill.Rate(4, nil), mm.Rate(4, nil); h <= m {
		t.Errorf("above Km: cooperative %g, hyperbolic %g, want cooperative higher", h, m)
	}
}

func TestRate_InhibitorRaisesEffectiveKm(t *testing.T) {
	e := &Enzyme{
		Name:       "phosphofructokinase",
		VMax:       10,
		Km:         5,
		Inhibitors: map[string]float64{"citrate": 10},
	}

	// Citrate at its Ki doubles the effective Km: 10*10/(10+10).
	if got := e.Rate(10, map[string]float64{"citrate": 10}); got != 5 {
		t.Errorf("inhibited rate = %g, want 5", got)
	}
	// An absent inhibitor contributes nothing.
	if got := e.Rate(10, map[string]float64{}); !approx(got, 10.0*10/15) {
		t.Errorf("uninhibited rate = %g, want %g", got, 10.0*10/15)
	}
}

func TestRate_ActivatorRaisesEffectiveVMax(t *testing.T) {
	e := &Enzyme{
		Name:       "isocitrate_dehydrogenase",
		VMax:       10,
		Km:         5,
		Activators: map[string]float64{"adp": 500},
	}

	// ADP at its Ka doubles the effective Vmax: 20*5/(5+5).
	if got := e.Rate(5, map[string]float64{"adp": 500}); got != 10 {
		t.Errorf("activated rate = %g, want 10", got)
	}
	if got := e.Rate(5, nil); got != 5 {
		t.Errorf("unactivated rate = %g, want 5", got)
	}
}

func TestActivity_ZeroValueIsNeutral(t *testing.T) {
	e := &Enzyme{Name: "pfk", VMax: 10, Km: 5}

	if got := e.Activity(); got != 1 {
		t.Errorf("zero-value activity = %g, want 1", got)
	}

	e.SetActivity(1.2)
	if got := e.Activity(); got != 1.2 {
		t.Errorf("activity = %g, want 1.2", got)
	}
	if got := e.Rate(5, nil); got != 6 {
		t.Errorf("boosted rate = %g, want 6", got)
	}

	// Non-positive values reset the multiplier rather than zeroing rates.
	e.SetActivity(0)
	if got := e.Activity(); got != 1 {
		t.Errorf("activity after SetActivity(0) = %g, want 1", got)
	}
	e.SetActivity(-3)
	if got := e.Activity(); got != 1 {
		t.Errorf("activity after SetActivity(-3) = %g, want 1", got)
	}
}

func TestAllostericActivity_CombinesRegulators(t *testing.T) {
	e := &Enzyme{
		Name:       "isocitrate_dehydrogenase",
		VMax:       10,
		Km:         5,
		Inhibitors: map[string]float64{"atp": 1000},
		Activators: map[string]float64{"adp": 500},
	}

	// Inhibitor at Ki halves, activator at Ka doubles; together neutral.
	levels := map[string]float64{"atp": 1000, "adp": 500}
	if got := e.AllostericActivity(levels); !approx(got, 1) {
		t.Errorf("combined factor = %g, want 1", got)
	}
	if got := e.AllostericActivity(map[string]float64{"atp": 1000}); !approx(got, 0.5) {
		t.Errorf("inhibited factor = %g, want 0.5", got)
	}
	if got := e.AllostericActivity(nil); got != 1 {
		t.Errorf("bare factor = %g, want 1", got)
	}

	e.SetActivity(2)
	if got := e.AllostericActivity(levels); !approx(got, 2) {
		t.Errorf("factor with feedback = %g, want 2", got)
	}
}
