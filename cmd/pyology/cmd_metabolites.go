package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Dooders/Pyology/internal/config"
	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
	"github.com/Dooders/Pyology/internal/organelle"
	"github.com/spf13/cobra"
)

func newMetabolitesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metabolites",
		Short: "Show the metabolite pools of a freshly seeded cell",
		Long: `Build a cell with the standard starting pools and dump every
metabolite ledger: name, quantity, and pool ceiling.

With --load, YAML metabolite records are applied to the cytoplasm first:

  glucose:
    quantity: 10
    meta:
      concentration:
        range:
          max: 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			loadPath, _ := cmd.Flags().GetString("load")
			compartmentFlag, _ := cmd.Flags().GetString("compartment")

			compartment := constants.CompartmentBoth
			if compartmentFlag != "" {
				compartment = constants.Compartment(compartmentFlag)
				if !compartment.Valid() {
					return fmt.Errorf("invalid compartment: %s (valid: cytoplasm, mitochondrion, both)", compartmentFlag)
				}
			}
			showCyto := compartment != constants.CompartmentMitochondrion
			showMito := compartment != constants.CompartmentCytoplasm

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			cell, err := organelle.NewCell(log)
			if err != nil {
				return fmt.Errorf("failed to build cell: %w", err)
			}

			if loadPath != "" {
				records, err := config.LoadMetabolites(loadPath)
				if err != nil {
					return fmt.Errorf("failed to load metabolite records: %w", err)
				}
				if err := organelle.ApplyRecords(cell.Cytoplasm.Store(), records); err != nil {
					return fmt.Errorf("failed to apply metabolite records: %w", err)
				}
			}

			if jsonOut {
				result := map[string]interface{}{}
				if showCyto {
					result["cytoplasm"] = cell.Cytoplasm.Store().State("quantity", "max_quantity", "energy")
				}
				if showMito {
					result["mitochondrion"] = cell.Mitochondrion.Store().State("quantity", "max_quantity", "energy")
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			out := cmd.OutOrStdout()
			if showCyto {
				printCompartment(out, "Cytoplasm", cell.Cytoplasm.Store())
			}
			if showMito {
				printCompartment(out, "Mitochondrion", cell.Mitochondrion.Store())
			}

			return nil
		},
	}

	cmd.Flags().String("load", "", "YAML metabolite records applied to the cytoplasm first")
	cmd.Flags().String("compartment", "", "Restrict output to one compartment: cytoplasm, mitochondrion, or both")

	return cmd
}

// printCompartment writes one compartment's ledger as aligned
// name/quantity/ceiling lines in sorted name order.
func printCompartment(w io.Writer, label string, store *metabolite.Store) {
	fmt.Fprintf(w, "%s (%d pools, total energy %.1f):\n", label, store.Len(), store.TotalEnergy())
	for _, name := range store.Names() {
		m, ok := store.Get(name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-28s %10.2f / %g\n", name, m.Quantity(), m.MaxQuantity())
	}
	fmt.Fprintln(w)
}
