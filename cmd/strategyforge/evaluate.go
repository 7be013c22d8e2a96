package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"strategyforge/internal/eval"
	"strategyforge/internal/llm"
)

var (
	evalBenchmark string
	evalModel     string
	evalMaxCases  int
	evalOutput    string
	evalContinue  bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run a benchmark suite against a model",
	Long:  "evaluate runs strategic reasoning benchmarks against a model and prints a scored report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if evalModel != "" {
			cfg.Model.Name = evalModel
		}

		suite, err := eval.NewRegistry().Get(evalBenchmark)
		if err != nil {
			return err
		}

		client := llm.NewOllamaClient(cfg.Model.Endpoint, cfg.Model.Name)
		runner := eval.NewRunner(client, newLogger())
		if cfg.Evaluation.Temperature > 0 {
			runner.Temperature = cfg.Evaluation.Temperature
		}
		runner.ContinueOnError = evalContinue || cfg.Evaluation.ContinueOnError

		report, err := runner.RunSuite(context.Background(), evalBenchmark, suite, evalMaxCases)
		if err != nil {
			return err
		}
		fmt.Println(report.Summary())
		if evalOutput != "" {
			if err := report.Save(evalOutput); err != nil {
				return err
			}
			fmt.Printf("Report saved to %s\n", evalOutput)
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evalBenchmark, "benchmark", "quick", "Benchmark suite name")
	evaluateCmd.Flags().StringVar(&evalModel, "model", "", "Model name (defaults to config)")
	evaluateCmd.Flags().IntVar(&evalMaxCases, "max-cases", 0, "Limit the number of cases (0 runs all)")
	evaluateCmd.Flags().StringVar(&evalOutput, "output", "", "Path to save the JSON report")
	evaluateCmd.Flags().BoolVar(&evalContinue, "continue-on-error", false, "Record failed cases and keep going")
}
