// Package catalog defines the stock enzymes and reactions of central carbon
// metabolism: the ten glycolytic steps, the pyruvate dehydrogenase bridge,
// the eight Krebs cycle steps, and lactate fermentation.
//
// Constructors return freshly built reactions so that independent
// simulations never share enzyme state.
package catalog

import (
	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/kinetics"
	"github.com/Dooders/Pyology/internal/reaction"
)

// step builds a unit-stoichiometry pathway reaction with the standard
// catalytic parameters.
func step(name, substrate string, consume, produce map[string]float64) *reaction.Reaction {
	return &reaction.Reaction{
		Name: name,
		Enzyme: &kinetics.Enzyme{
			Name: name,
			VMax: constants.CatalyticVMax,
			Km:   constants.CatalyticKm,
		},
		Substrate: substrate,
		Consume:   consume,
		Produce:   produce,
	}
}
