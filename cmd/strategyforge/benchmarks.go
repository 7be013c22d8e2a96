package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strategyforge/internal/eval"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "List available benchmark suites",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, info := range eval.NewRegistry().List() {
			fmt.Printf("%-12s %3d cases  %s\n", info.Name, info.NumCases, info.Description)
		}
		return nil
	},
}
