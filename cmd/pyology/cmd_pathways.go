package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/metabolite"
	"github.com/Dooders/Pyology/internal/organelle"
	"github.com/Dooders/Pyology/internal/pathway"
	"github.com/spf13/cobra"
)

func newGlycolysisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glycolysis",
		Short: "Run glycolysis on a fresh cytoplasm",
		Long: `Run the ten-step glycolysis pathway against a freshly seeded
cytoplasm and report the net ATP gain and pyruvate produced.

Fractional glucose is floored to whole units.

Example:
  pyology glycolysis --glucose 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			glucose, _ := cmd.Flags().GetFloat64("glucose")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			cyto, err := organelle.NewCytoplasm(log)
			if err != nil {
				return fmt.Errorf("failed to build cytoplasm: %w", err)
			}
			if err := cyto.Store().SetQuantity(constants.SpeciesGlucose, glucose); err != nil {
				return fmt.Errorf("failed to seed glucose: %w", err)
			}

			g := pathway.NewGlycolysis()
			g.Correction = cfg.Simulation.AdenineCorrection
			netATP, pyruvate, err := g.Perform(cyto.Store(), glucose)
			if err != nil {
				return fmt.Errorf("glycolysis failed: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"glucose":  glucose,
					"net_atp":  netATP,
					"pyruvate": pyruvate,
					"pools":    cyto.Store().Quantities(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Glycolysis of %g glucose:\n\n", glucose)
			fmt.Fprintf(out, "  Net ATP:   %.2f\n", netATP)
			fmt.Fprintf(out, "  Pyruvate:  %.2f\n\n", pyruvate)
			printPools(out, cyto.Store(),
				constants.SpeciesATP,
				constants.SpeciesADP,
				constants.SpeciesPyruvate,
				constants.SpeciesLactate,
				constants.SpeciesNAD,
				constants.SpeciesNADH,
			)

			return nil
		},
	}

	cmd.Flags().Float64("glucose", 2, "Glucose units to process")

	return cmd
}

func newKrebsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "krebs",
		Short: "Run the Krebs cycle on a fresh mitochondrion",
		Long: `Seed acetyl-CoA into a freshly built mitochondrion and run one
Krebs cycle turn per whole unit, reporting the CO2 released and the
reduced carriers left behind.

Example:
  pyology krebs --acetyl 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			acetyl, _ := cmd.Flags().GetFloat64("acetyl")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			mito, err := organelle.NewMitochondrion(log)
			if err != nil {
				return fmt.Errorf("failed to build mitochondrion: %w", err)
			}
			if err := mito.Store().SetQuantity(constants.SpeciesAcetylCoA, acetyl); err != nil {
				return fmt.Errorf("failed to seed acetyl-CoA: %w", err)
			}

			k := pathway.NewKrebsCycle()
			co2, err := k.Perform(mito.Store(), acetyl)
			if err != nil {
				return fmt.Errorf("krebs cycle failed: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"acetyl_coa": acetyl,
					"co2":        co2,
					"pools":      mito.Store().Quantities(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Krebs cycle on %g acetyl-CoA:\n\n", acetyl)
			fmt.Fprintf(out, "  CO2 released:  %.2f\n\n", co2)
			printPools(out, mito.Store(),
				constants.SpeciesNADH,
				constants.SpeciesFADH2,
				constants.SpeciesGTP,
				constants.SpeciesOxaloacetate,
			)

			return nil
		},
	}

	cmd.Flags().Float64("acetyl", 2, "Acetyl-CoA units to feed into the cycle")

	return cmd
}

func newRespireCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respire",
		Short: "Run the electron transport chain and ATP synthase",
		Long: `Seed reduced carriers into a freshly built mitochondrion, drive
the four respiratory complexes to build the proton gradient, and spend
the gradient through ATP synthase.

Example:
  pyology respire --nadh 10 --fadh2 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			nadh, _ := cmd.Flags().GetFloat64("nadh")
			fadh2, _ := cmd.Flags().GetFloat64("fadh2")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			mito, err := organelle.NewMitochondrion(log)
			if err != nil {
				return fmt.Errorf("failed to build mitochondrion: %w", err)
			}
			if err := mito.Store().SetQuantity(constants.SpeciesNADH, nadh); err != nil {
				return fmt.Errorf("failed to seed NADH: %w", err)
			}
			if err := mito.Store().SetQuantity(constants.SpeciesFADH2, fadh2); err != nil {
				return fmt.Errorf("failed to seed FADH2: %w", err)
			}

			etc := pathway.NewElectronTransportChain()
			if err := etc.Run(mito.Store()); err != nil {
				return fmt.Errorf("electron transport failed: %w", err)
			}

			atp, err := pathway.SynthesizeATP(mito.Store())
			if err != nil {
				return fmt.Errorf("atp synthase failed: %w", err)
			}

			gradient, err := mito.Store().Quantity(constants.SpeciesProtonGradient)
			if err != nil {
				return fmt.Errorf("failed to read proton gradient: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"nadh":            nadh,
					"fadh2":           fadh2,
					"atp_synthesized": atp,
					"proton_gradient": gradient,
					"pools":           mito.Store().Quantities(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Respiration of %g NADH and %g FADH2:\n\n", nadh, fadh2)
			fmt.Fprintf(out, "  ATP synthesized:   %.2f\n", atp)
			fmt.Fprintf(out, "  Gradient left:     %.2f\n\n", gradient)
			printPools(out, mito.Store(),
				constants.SpeciesATP,
				constants.SpeciesADP,
				constants.SpeciesNADH,
				constants.SpeciesFADH2,
				constants.SpeciesOxygen,
			)

			return nil
		},
	}

	cmd.Flags().Float64("nadh", 10, "NADH units to oxidize through complex I")
	cmd.Flags().Float64("fadh2", 2, "FADH2 units to oxidize through complex II")

	return cmd
}

// printPools writes the named pools as aligned quantity lines, skipping
// names the store does not carry.
func printPools(w io.Writer, store *metabolite.Store, names ...string) {
	fmt.Fprintln(w, "Pools:")
	for _, name := range names {
		quantity, err := store.Quantity(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %-28s %10.2f\n", name, quantity)
	}
}
