package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dooders/Pyology/internal/logging"
	"github.com/Dooders/Pyology/internal/organelle"
	"github.com/Dooders/Pyology/internal/simulation"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the full metabolic simulation",
		Long: `Run the metabolic simulation: each step feeds glucose into the
cytoplasm, runs glycolysis, moves pyruvate into the mitochondrion, and
drives the Krebs cycle and the electron transport chain.

The run is recorded to the configured history store. Press Ctrl-C to
stop early; the run is then recorded as halted.

Example:
  pyology simulate --steps 10 --glucose 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// Flags override the config file where set
			if cmd.Flags().Changed("steps") {
				cfg.Simulation.DurationSteps, _ = cmd.Flags().GetInt("steps")
			}
			if cmd.Flags().Changed("glucose") {
				cfg.Simulation.GlucosePerStep, _ = cmd.Flags().GetFloat64("glucose")
			}
			if cmd.Flags().Changed("time-step") {
				cfg.Simulation.TimeStep, _ = cmd.Flags().GetFloat64("time-step")
			}
			if historyPath, _ := cmd.Flags().GetString("history"); historyPath != "" {
				cfg.History.Backend = "sqlite"
				cfg.History.Path = historyPath
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			log := newLogger(cfg)

			store, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			cell, err := organelle.NewCell(log)
			if err != nil {
				return fmt.Errorf("failed to build cell: %w", err)
			}

			ctrl, err := simulation.NewController(cell, log, store, cfg.Simulation)
			if err != nil {
				return fmt.Errorf("failed to build controller: %w", err)
			}

			if el := logging.NewEventLogger(eventLogDir(cfg), cfg.Logging.Level); el != nil {
				defer el.Close()
				ctrl.SetEventLogger(el)
			}

			// Cancel the run loop on Ctrl-C; the controller records the
			// run as halted before returning.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				cancel()
			}()

			result, err := ctrl.Run(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					fmt.Fprintln(os.Stderr, "interrupted; run recorded as halted")
					return nil
				}
				return fmt.Errorf("simulation failed: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"run_id":   result.RunID,
					"status":   result.Status,
					"steps":    result.Steps,
					"sim_time": cell.SimTime,
					"net_atp":  result.NetATP,
					"pyruvate": result.Pyruvate,
					"co2":      result.CO2,
					"events":   result.Events,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s %s after %d steps (sim time %g)\n\n", result.RunID, result.Status, result.Steps, cell.SimTime)
			fmt.Fprintf(out, "  Net ATP:   %.2f\n", result.NetATP)
			fmt.Fprintf(out, "  Pyruvate:  %.2f\n", result.Pyruvate)
			fmt.Fprintf(out, "  CO2:       %.2f\n", result.CO2)

			if len(result.Events) > 0 {
				fmt.Fprintf(out, "\nEvents (%d):\n", len(result.Events))
				for _, e := range result.Events {
					fmt.Fprintf(out, "  step %d [%s] %s\n", e.Step, e.Kind, e.Message)
				}
			}

			if cfg.History.Backend == "sqlite" {
				fmt.Fprintf(out, "\nUse 'pyology history show %s' to inspect the run.\n", result.RunID)
			}

			return nil
		},
	}

	cmd.Flags().Int("steps", 0, "Number of simulation steps (default from config)")
	cmd.Flags().Float64("glucose", 0, "Glucose fed into the cytoplasm each step (default from config)")
	cmd.Flags().Float64("time-step", 0, "Reaction integration step (default from config)")
	cmd.Flags().String("history", "", "Record the run to a SQLite file at this path")

	return cmd
}
