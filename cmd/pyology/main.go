package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Dooders/Pyology/internal/config"
	"github.com/Dooders/Pyology/internal/history"
	"github.com/Dooders/Pyology/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pyology",
		Short: "Cellular bioenergetics simulator",
		Long: `pyology simulates cellular energy metabolism: glycolysis in the
cytoplasm, the Krebs cycle and oxidative phosphorylation in the
mitochondrion, with every metabolite pool tracked as a bounded ledger.

Runs are recorded to a history store and can be inspected afterwards
with 'pyology history'.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.pyology/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug, or trace")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newGlycolysisCmd(),
		newKrebsCmd(),
		newRespireCmd(),
		newMetabolitesCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "pyology version %s (commit: %s, built: %s)\n", version, commit, date)
			}
		},
	}
}

// loadConfig resolves configuration for a command invocation: the --config
// file when given, the default locations otherwise, with --log-level
// layered on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// newLogger builds the operational logger for a command. Logs go to stderr
// so stdout stays clean for command output.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, os.Stderr)
}

// eventLogDir resolves the directory receiving events.jsonl at debug level
// and below.
func eventLogDir(cfg *config.Config) string {
	if cfg.Logging.EventLog != "" {
		return cfg.Logging.EventLog
	}
	return ".pyology"
}

// openHistory opens the configured history backend. The sqlite backend
// resolves an empty path to ~/.pyology/history.db, creating the directory
// if needed.
func openHistory(cfg *config.Config) (history.Store, error) {
	if cfg.History.Backend != "sqlite" {
		return history.NewMemoryStore(), nil
	}

	path := cfg.History.Path
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".pyology", "history.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	store, err := history.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	return store, nil
}
