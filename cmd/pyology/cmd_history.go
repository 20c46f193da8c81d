package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dooders/Pyology/internal/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded simulation runs",
		Long: `List and inspect runs recorded by 'pyology simulate'.

Only the sqlite backend outlives the process that wrote it. Configure
history.backend: sqlite in ~/.pyology/config.yaml, or point --history at
the file a previous 'simulate --history' wrote.

Examples:
  pyology history list
  pyology history show 2f1c... --steps`,
	}

	cmd.PersistentFlags().String("history", "", "Read history from this SQLite file")

	cmd.AddCommand(
		newHistoryListCmd(),
		newHistoryShowCmd(),
	)

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			store, ok, err := openRecordedHistory(cmd)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			defer store.Close()

			runs, err := store.ListRuns(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"runs":  runs,
					"count": len(runs),
				})
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				fmt.Fprintln(out, "\nUse 'pyology simulate' to record one.")
				return nil
			}

			fmt.Fprintf(out, "Recorded runs (%d):\n\n", len(runs))
			for i, run := range runs {
				fmt.Fprintf(out, "%d. %s [%s]\n", i+1, run.ID, run.Status)
				fmt.Fprintf(out, "   Started: %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "   Net ATP: %.2f  Pyruvate: %.2f  CO2: %.2f\n", run.NetATP, run.TotalPyruvate, run.TotalCO2)
				fmt.Fprintln(out)
			}

			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show one run's summary, events, and optionally its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			withSteps, _ := cmd.Flags().GetBool("steps")
			runID := args[0]

			store, ok, err := openRecordedHistory(cmd)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			defer store.Close()

			ctx := context.Background()
			run, err := store.GetRun(ctx, runID)
			if err != nil {
				return fmt.Errorf("failed to load run: %w", err)
			}
			if run == nil {
				if jsonOut {
					json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
						"error":  "run not found",
						"run_id": runID,
					})
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Run %s not found.\n", runID)
				}
				return nil
			}

			events, err := store.EventsForRun(ctx, runID)
			if err != nil {
				return fmt.Errorf("failed to load events: %w", err)
			}

			var steps []history.Step
			if withSteps {
				steps, err = store.StepsForRun(ctx, runID)
				if err != nil {
					return fmt.Errorf("failed to load steps: %w", err)
				}
			}

			if jsonOut {
				result := map[string]interface{}{
					"run":    run,
					"events": events,
				}
				if withSteps {
					result["steps"] = steps
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s [%s]\n\n", run.ID, run.Status)
			fmt.Fprintf(out, "  Started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
			if !run.FinishedAt.IsZero() {
				fmt.Fprintf(out, "  Finished:  %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintf(out, "  Net ATP:   %.2f\n", run.NetATP)
			fmt.Fprintf(out, "  Pyruvate:  %.2f\n", run.TotalPyruvate)
			fmt.Fprintf(out, "  CO2:       %.2f\n", run.TotalCO2)
			if run.ConfigJSON != "" {
				fmt.Fprintf(out, "  Config:    %s\n", run.ConfigJSON)
			}

			if len(events) > 0 {
				fmt.Fprintf(out, "\nEvents (%d):\n", len(events))
				for _, e := range events {
					fmt.Fprintf(out, "  step %d [%s] %s\n", e.Step, e.Kind, e.Message)
					if e.DetailsJSON != "" {
						fmt.Fprintf(out, "    %s\n", e.DetailsJSON)
					}
				}
			} else {
				fmt.Fprintln(out, "\nNo events recorded.")
			}

			if withSteps {
				fmt.Fprintf(out, "\nSteps (%d):\n", len(steps))
				for _, s := range steps {
					fmt.Fprintf(out, "  %d (t=%g): %s\n", s.Index, s.SimTime, s.QuantitiesJSON)
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("steps", false, "Include per-step metabolite snapshots")

	return cmd
}

// openRecordedHistory opens the history backend for inspection. When the
// effective backend is the in-process memory store there is nothing to
// inspect; a hint is printed and ok is false.
func openRecordedHistory(cmd *cobra.Command) (history.Store, bool, error) {
	jsonOut, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, false, err
	}

	if path, _ := cmd.Flags().GetString("history"); path != "" {
		cfg.History.Backend = "sqlite"
		cfg.History.Path = path
	}

	if cfg.History.Backend != "sqlite" {
		if jsonOut {
			json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
				"error": "history backend is memory; nothing persists between invocations",
			})
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "History backend is memory; nothing persists between invocations.")
			fmt.Fprintln(cmd.OutOrStdout(), "Set history.backend: sqlite in ~/.pyology/config.yaml or pass --history.")
		}
		return nil, false, nil
	}

	store, err := openHistory(cfg)
	if err != nil {
		return nil, false, err
	}

	return store, true, nil
}
