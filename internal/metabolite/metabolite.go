// Package metabolite implements the bounded metabolite ledger that every
// compartment is built on: single pools with [min, max] invariants and a
// registry with atomic batch consume/produce.
package metabolite

import (
	"sync"

	"github.com/Dooders/Pyology/internal/constants"
)

// Metabolite is a single bounded pool of one chemical species. Its quantity
// always satisfies min <= quantity <= max; mutations that would violate the
// bounds fail instead of clamping. A per-pool mutex makes single-pool
// mutation safe under concurrent access, although the orchestration layer is
// single-threaded today.
type Metabolite struct {
	// Name is the canonical lower-cased identity used for lookups.
	Name string
	// Label preserves the casing the species was registered with.
	Label string
	// Unit is the concentration unit, informational only.
	Unit string
	// Metadata carries arbitrary record data from configuration.
	Metadata map[string]any

	mu       sync.Mutex
	quantity float64
	min      float64
	max      float64
	onChange func(*Metabolite)
}

// Quantity returns the current quantity.
func (m *Metabolite) Quantity() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quantity
}

// MinQuantity returns the lower bound.
func (m *Metabolite) MinQuantity() float64 { return m.min }

// MaxQuantity returns the upper bound.
func (m *Metabolite) MaxQuantity() float64 { return m.max }

// Adjust changes the quantity by delta, failing with a QuantityError if the
// result would leave [min, max]. Results within QuantityEpsilon of a bound
// are snapped to it; rate-limited flows routinely land one ulp past exact
// depletion.
func (m *Metabolite) Adjust(delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setLocked(m.quantity + delta)
}

// Set replaces the quantity, subject to the same bound checks as Adjust.
func (m *Metabolite) Set(value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setLocked(value)
}

func (m *Metabolite) setLocked(value float64) error {
	switch {
	case value < m.min-constants.QuantityEpsilon || value > m.max+constants.QuantityEpsilon:
		return &QuantityError{Name: m.Name, Attempted: value, Min: m.min, Max: m.max}
	case value < m.min:
		value = m.min
	case value > m.max:
		value = m.max
	}
	m.quantity = value
	if m.onChange != nil {
		m.onChange(m)
	}
	return nil
}

// Reset returns the pool to its minimum quantity.
func (m *Metabolite) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantity = m.min
	if m.onChange != nil {
		m.onChange(m)
	}
}

// SetOnChange installs a hook invoked after every quantity change, including
// Reset. Passing nil removes the hook.
func (m *Metabolite) SetOnChange(fn func(*Metabolite)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// PercentFilled returns quantity as a percentage of the maximum.
func (m *Metabolite) PercentFilled() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max == 0 {
		return 0
	}
	return m.quantity / m.max * 100
}

// Energy returns the pool's free-energy contribution:
// quantity times the species coefficient.
func (m *Metabolite) Energy() float64 {
	return FreeEnergy(m.Name) * m.Quantity()
}

// State returns the named attributes of the pool. Recognized attributes are
// quantity, energy, min_quantity, max_quantity, unit, and label; unknown
// names are ignored.
func (m *Metabolite) State(attrs ...string) map[string]any {
	state := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		switch attr {
		case "quantity":
			state[attr] = m.Quantity()
		case "energy":
			state[attr] = m.Energy()
		case "min_quantity":
			state[attr] = m.min
		case "max_quantity":
			state[attr] = m.max
		case "unit":
			state[attr] = m.Unit
		case "label":
			state[attr] = m.Label
		}
	}
	return state
}
