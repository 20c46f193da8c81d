package pathway

import (
	"errors"
	"math"
	"testing"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
)

func TestProtonLeak_MonotoneAndLogistic(t *testing.T) {
	grid := []float64{0, 25, 50, 100, 149, 150, 151, 175, 200, 500}
	prev := -1.0
	for _, gradient := range grid {
		leak := ProtonLeak(gradient)
		if leak < 0 || leak > constants.LeakRate {
			t.Errorf("leak(%g) = %g, want within [0, %g]", gradient, leak, constants.LeakRate)
		}
		if leak < prev {
			t.Errorf("leak(%g) = %g decreased below %g", gradient, leak, prev)
		}
		prev = leak
	}

	// At the midpoint the logistic sits at exactly half the asymptote.
	mid := ProtonLeak(constants.LeakMidpoint)
	if math.Abs(mid-constants.LeakRate/2) > 1e-12 {
		t.Errorf("leak at midpoint = %g, want %g", mid, constants.LeakRate/2)
	}
}

func TestRun_PumpsThroughAllComplexes(t *testing.T) {
	s := seededMatrix(t, nil, 0)
	if err := s.SetQuantity(constants.SpeciesNADH, 2); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.SetQuantity(constants.SpeciesFADH2, 1); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	if err := NewElectronTransportChain().Run(s); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 2 NADH pump 8 at Complex I; 3 ubiquinol (2 from NADH, 1 from
	// FADH2) pump 6 at Complex III; 3 cytochromes pump 3 at Complex IV.
	// The leak at a gradient this far below the midpoint is negligible
	// but strictly positive.
	gradient, _ := s.Quantity(constants.SpeciesProtonGradient)
	if math.Abs(gradient-17) > 1e-4 {
		t.Errorf("gradient = %g, want ~17", gradient)
	}
	if gradient >= 17 {
		t.Errorf("gradient = %g, want < 17 after leak", gradient)
	}

	nadh, _ := s.Quantity(constants.SpeciesNADH)
	if nadh != 0 {
		t.Errorf("NADH = %g, want 0", nadh)
	}
	fadh2, _ := s.Quantity(constants.SpeciesFADH2)
	if fadh2 != 0 {
		t.Errorf("FADH2 = %g, want 0", fadh2)
	}
	// Carriers cycle back to their oxidized pools.
	ubiquinone, _ := s.Quantity(constants.SpeciesUbiquinone)
	if math.Abs(ubiquinone-constants.InitialUbiquinone) > 1e-9 {
		t.Errorf("ubiquinone = %g, want %g", ubiquinone, float64(constants.InitialUbiquinone))
	}
	cytOx, _ := s.Quantity(constants.SpeciesCytochromeCOxidized)
	if math.Abs(cytOx-constants.InitialCytochromeC) > 1e-9 {
		t.Errorf("oxidized cytochrome c = %g, want %g", cytOx, float64(constants.InitialCytochromeC))
	}
	// Complex IV burns half an O2 per cytochrome pair: 3 cytochromes,
	// 1.5 oxygen.
	oxygen, _ := s.Quantity(constants.SpeciesOxygen)
	if math.Abs(oxygen-(constants.InitialOxygen-1.5)) > 1e-9 {
		t.Errorf("oxygen = %g, want %g", oxygen, constants.InitialOxygen-1.5)
	}
}

func TestRun_GradientCappedAtCeiling(t *testing.T) {
	s := seededMatrix(t, nil, 0)
	if err := s.SetQuantity(constants.SpeciesNADH, 60); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	// 60 NADH would pump 240 protons at Complex I alone; the gradient
	// pool ceiling is 200 and the overflow is dropped, not an error.
	if err := NewElectronTransportChain().Run(s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	gradient, _ := s.Quantity(constants.SpeciesProtonGradient)
	if gradient > constants.MaxProtonGradient {
		t.Errorf("gradient = %g, exceeds ceiling %g", gradient, float64(constants.MaxProtonGradient))
	}
	// At the ceiling the leak is near its asymptote.
	if gradient >= constants.MaxProtonGradient || gradient < constants.MaxProtonGradient-0.2 {
		t.Errorf("gradient = %g, want within (%g, %g)", gradient,
			constants.MaxProtonGradient-0.2, float64(constants.MaxProtonGradient))
	}
}

func TestRun_MissingGradientPool(t *testing.T) {
	s := metabolite.NewStore(nil)
	for _, sd := range []struct {
		name string
		qty  float64
	}{
		{constants.SpeciesNADH, 2},
		{constants.SpeciesNAD, 0},
		{constants.SpeciesUbiquinone, 10},
		{constants.SpeciesUbiquinol, 0},
	} {
		if err := s.Register(sd.name, sd.qty, 1000, nil); err != nil {
			t.Fatalf("Register(%s): %v", sd.name, err)
		}
	}

	err := NewElectronTransportChain().Run(s)
	if err == nil {
		t.Fatal("expected error without a proton gradient pool")
	}
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if pe.Pathway != "electron_transport_chain" {
		t.Errorf("pathway = %s, want electron_transport_chain", pe.Pathway)
	}
	if pe.Step != "complex_i" {
		t.Errorf("step = %s, want complex_i", pe.Step)
	}
}

func TestSynthesizeATP_FloorsAndRetainsRemainder(t *testing.T) {
	s := seededMatrix(t, nil, 0)
	if err := s.SetQuantity(constants.SpeciesProtonGradient, 17); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	made, err := SynthesizeATP(s)
	if err != nil {
		t.Fatalf("SynthesizeATP: %v", err)
	}
	// floor(17/4) = 4 ATP; 16 protons spent, 1 retained.
	if made != 4 {
		t.Errorf("ATP made = %g, want 4", made)
	}
	atp, _ := s.Quantity(constants.SpeciesATP)
	if atp != 4 {
		t.Errorf("ATP pool = %g, want 4", atp)
	}
	gradient, _ := s.Quantity(constants.SpeciesProtonGradient)
	if gradient != 1 {
		t.Errorf("gradient = %g, want 1 (remainder retained)", gradient)
	}
}

func TestSynthesizeATP_BoundedByADP(t *testing.T) {
	s := seededMatrix(t, nil, 0)
	if err := s.SetQuantity(constants.SpeciesProtonGradient, 17); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.SetQuantity(constants.SpeciesADP, 2); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	made, err := SynthesizeATP(s)
	if err != nil {
		t.Fatalf("SynthesizeATP: %v", err)
	}
	// Only 2 ADP on hand: 2 ATP, 8 protons spent, 9 retained. Unspent
	// protons are not discarded to a modulo.
	if made != 2 {
		t.Errorf("ATP made = %g, want 2", made)
	}
	gradient, _ := s.Quantity(constants.SpeciesProtonGradient)
	if gradient != 9 {
		t.Errorf("gradient = %g, want 9", gradient)
	}
}

func TestSynthesizeATP_InsufficientGradientOrADP(t *testing.T) {
	tests := []struct {
		name     string
		gradient float64
		adp      float64
	}{
		{"below one atp worth", 3, 100},
		{"no adp", 17, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seededMatrix(t, nil, 0)
			if err := s.SetQuantity(constants.SpeciesProtonGradient, tt.gradient); err != nil {
				t.Fatalf("SetQuantity: %v", err)
			}
			if err := s.SetQuantity(constants.SpeciesADP, tt.adp); err != nil {
				t.Fatalf("SetQuantity: %v", err)
			}

			made, err := SynthesizeATP(s)
			if err != nil {
				t.Fatalf("SynthesizeATP: %v", err)
			}
			if made != 0 {
				t.Errorf("ATP made = %g, want 0", made)
			}
			gradient, _ := s.Quantity(constants.SpeciesProtonGradient)
			if gradient != tt.gradient {
				t.Errorf("gradient = %g, want %g untouched", gradient, tt.gradient)
			}
		})
	}
}
