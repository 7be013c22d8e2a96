package main

import (
	"github.com/spf13/cobra"

	"strategyforge/internal/llm"
	"strategyforge/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST and SSE API server",
	Long:  "serve exposes scenarios, benchmarks, evaluation jobs and live simulations over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		factory := func(model string) llm.Client {
			if model == "" {
				model = cfg.Model.Name
			}
			return llm.NewOllamaClient(cfg.Model.Endpoint, model)
		}
		srv := server.NewServer(factory, newLogger())
		return srv.Start(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to config)")
}
