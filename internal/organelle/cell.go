package organelle

import (
	"log/slog"

	"github.com/Dooders/Pyology/internal/metabolite"
)

// Cell bundles the two compartments the simulation moves metabolites
// between.
type Cell struct {
	Cytoplasm     *Cytoplasm
	Mitochondrion *Mitochondrion

	// SimTime is the simulation clock in simulation time units. The
	// controller advances it once per step.
	SimTime float64
}

// NewCell builds both compartments against the same logger.
func NewCell(log *slog.Logger) (*Cell, error) {
	cytoplasm, err := NewCytoplasm(log)
	if err != nil {
		return nil, err
	}
	mitochondrion, err := NewMitochondrion(log)
	if err != nil {
		return nil, err
	}
	return &Cell{
		Cytoplasm:     cytoplasm,
		Mitochondrion: mitochondrion,
	}, nil
}

// Reset restores both compartments to their seeded state and zeroes the
// clock.
func (c *Cell) Reset() error {
	if err := c.Cytoplasm.Reset(); err != nil {
		return err
	}
	if err := c.Mitochondrion.Reset(); err != nil {
		return err
	}
	c.SimTime = 0
	return nil
}

// TotalQuantity sums a species across both compartments. A species only one
// compartment tracks contributes from that compartment alone; a species
// neither tracks is an error.
func (c *Cell) TotalQuantity(species string) (float64, error) {
	var total float64
	found := false
	for _, store := range []*metabolite.Store{c.Cytoplasm.Store(), c.Mitochondrion.Store()} {
		if !store.Exists(species) {
			continue
		}
		q, err := store.Quantity(species)
		if err != nil {
			return 0, err
		}
		total += q
		found = true
	}
	if !found {
		return 0, &metabolite.UnknownMetaboliteError{Name: species}
	}
	return total, nil
}
