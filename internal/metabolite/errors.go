package metabolite

import "fmt"

// UnknownMetaboliteError reports a reference to a species that was never
// registered. It indicates a configuration or programming error, not a
// transient condition; callers should not retry.
type UnknownMetaboliteError struct {
	Name string
}

func (e *UnknownMetaboliteError) Error() string {
	return fmt.Sprintf("unknown metabolite: %s", e.Name)
}

// InsufficientMetaboliteError reports a batch consume whose pre-check found
// too little of a species. The batch was rejected as a whole; callers may
// retry after producing more, or skip the step.
type InsufficientMetaboliteError struct {
	Name      string
	Requested float64
	Available float64
}

func (e *InsufficientMetaboliteError) Error() string {
	return fmt.Sprintf("insufficient %s for reaction: requested %g, available %g",
		e.Name, e.Requested, e.Available)
}

// QuantityError reports a mutation that would push a quantity outside its
// [min, max] bounds. The store never auto-corrects; the caller computed an
// invalid delta.
type QuantityError struct {
	Name      string
	Attempted float64
	Min       float64
	Max       float64
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("invalid quantity for %s: attempted to set to %g, bounds [%g, %g]",
		e.Name, e.Attempted, e.Min, e.Max)
}
