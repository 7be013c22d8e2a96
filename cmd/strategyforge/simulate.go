package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"strategyforge/internal/game"
	"strategyforge/internal/llm"
	"strategyforge/internal/scenario"
	"strategyforge/internal/tools"
	"strategyforge/internal/tui"
)

var (
	simScenario  string
	simTurns     int
	simModel     string
	simPrintOnly bool
	simTUI       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a wargame simulation between LLM commanders",
	Long:  "simulate runs a scripted scenario through blue and red commander agents with an analyst scoring each turn.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if simScenario != "" {
			cfg.Simulation.Scenario = simScenario
		}
		if simTurns > 0 {
			cfg.Simulation.MaxTurns = simTurns
		}
		if simModel != "" {
			cfg.Model.Name = simModel
		}

		sc, err := scenario.NewRegistry().Get(cfg.Simulation.Scenario)
		if err != nil {
			return err
		}

		writer, scoreWriter, cleanup, err := newWriters(cfg, simPrintOnly || simTUI)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var viewer *tui.TUIWriter
		if simTUI {
			viewer = tui.NewTUIWriter(cancel)
			defer viewer.Close()
			mw := game.NewMultiWriter(
				[]game.TranscriptWriter{writer, viewer},
				[]game.ScoreWriter{scoreWriter, viewer},
			)
			writer, scoreWriter = mw, mw
		}

		logger := newLogger()
		client := llm.NewOllamaClient(cfg.Model.Endpoint, cfg.Model.Name)
		orch := game.NewOrchestrator(client, tools.NewRegistry(), writer, scoreWriter, logger, cfg.Model.Temperature)
		if viewer != nil {
			viewer.Observe(orch.Subscribe())
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigs
			cancel()
		}()

		state := game.NewState(sc, cfg.Simulation.MaxTurns)
		runErr := orch.Run(ctx, state)
		if viewer != nil {
			viewer.Done(runErr)
		}
		if runErr != nil {
			return runErr
		}
		if !simTUI {
			fmt.Printf("Simulation %s complete after turn %d, winner: %s\n",
				orch.SimulationID(), state.TurnNumber, state.Winner)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "Scenario ID (defaults to config)")
	simulateCmd.Flags().IntVar(&simTurns, "turns", 0, "Maximum number of turns (defaults to config)")
	simulateCmd.Flags().StringVar(&simModel, "model", "", "Model name (defaults to config)")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print transcript to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render the simulation in a terminal UI")
}
