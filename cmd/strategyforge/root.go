package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"strategyforge/internal/config"
	"strategyforge/internal/logging"
)

var (
	cfgPath    string
	schemaPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "strategyforge",
	Short: "LLM wargaming toolkit",
	Long:  "StrategyForge runs turn-based wargame simulations between LLM commanders and benchmarks strategic reasoning.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to configuration YAML (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schemas/config.cue", "Path to CUE schema file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(benchmarksCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the configured YAML file, or returns defaults when
// no --config was given.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	sp := schemaPath
	if _, err := os.Stat(sp); err != nil {
		sp = ""
	}
	return config.Load(cfgPath, sp)
}

func newLogger() *slog.Logger {
	if verbose {
		return logging.NewVerbose()
	}
	return logging.New()
}
