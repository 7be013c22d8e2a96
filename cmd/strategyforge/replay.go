package main

import (
	"github.com/spf13/cobra"

	"strategyforge/internal/game"
)

var (
	replayInput     string
	replaySpeed     float64
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a transcript log file",
	Long:  "replay feeds transcript records from a log file back into GreptimeDB or STDOUT at the original pacing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		writer, err := newTranscriptWriter(cfg, replayPrintOnly)
		if err != nil {
			return err
		}
		return game.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to transcript log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print records to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
