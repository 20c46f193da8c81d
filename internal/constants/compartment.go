package constants

// Compartment identifies a metabolite-bearing compartment of the cell, or
// both at once for operations that span the whole cell.
type Compartment string

const (
	// CompartmentCytoplasm addresses the cytosolic pools
	CompartmentCytoplasm Compartment = "cytoplasm"

	// CompartmentMitochondrion addresses the mitochondrial matrix pools
	CompartmentMitochondrion Compartment = "mitochondrion"

	// CompartmentBoth addresses both compartments at once
	CompartmentBoth Compartment = "both"
)

// Valid returns true if the compartment is a recognized value.
func (c Compartment) Valid() bool {
	switch c {
	case CompartmentCytoplasm, CompartmentMitochondrion, CompartmentBoth:
		return true
	}
	return false
}

// String returns the string representation of the compartment.
func (c Compartment) String() string {
	return string(c)
}
