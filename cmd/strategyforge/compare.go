package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strategyforge/internal/eval"
)

var compareCmd = &cobra.Command{
	Use:   "compare <report1.json> <report2.json>",
	Short: "Compare two saved benchmark reports",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r1, err := eval.LoadReport(args[0])
		if err != nil {
			return err
		}
		r2, err := eval.LoadReport(args[1])
		if err != nil {
			return err
		}
		c := eval.Compare(r1, r2)
		fmt.Printf("%s: %.1f%%\n", c.Model1, c.Score1)
		fmt.Printf("%s: %.1f%%\n", c.Model2, c.Score2)
		fmt.Printf("Difference: %+.1f points\n", c.Difference)
		for cat, cc := range c.Categories {
			fmt.Printf("  [%s] %.1f%% vs %.1f%%\n", cat, cc.Model1*100, cc.Model2*100)
		}
		return nil
	},
}
