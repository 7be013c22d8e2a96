package main

import (
	"os"

	"strategyforge/internal/config"
	"strategyforge/internal/game"
)

// newWriters assembles the transcript and score sinks from config and
// flags. It returns the writers and a cleanup function to close any
// resources.
func newWriters(cfg *config.Config, printOnly bool) (game.TranscriptWriter, game.ScoreWriter, func(), error) {
	cleanup := func() {}

	tw, sw, err := baseWriters(cfg, printOnly)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.Outputs.TranscriptPath == "" {
		return tw, sw, cleanup, nil
	}

	fw, err := game.NewFileWriter(cfg.Outputs.TranscriptPath, cfg.Outputs.ScoresPath)
	if err != nil {
		return nil, nil, nil, err
	}
	mw := game.NewMultiWriter(
		[]game.TranscriptWriter{tw, fw},
		[]game.ScoreWriter{sw, fw},
	)
	cleanup = func() { fw.Close() }
	return mw, mw, cleanup, nil
}

// baseWriters chooses the underlying sink based on the printOnly flag,
// config, and env vars.
func baseWriters(cfg *config.Config, printOnly bool) (game.TranscriptWriter, game.ScoreWriter, error) {
	endpoint := cfg.Outputs.GreptimeEndpoint
	if env := os.Getenv("GREPTIMEDB_ENDPOINT"); env != "" {
		endpoint = env
	}
	if printOnly || endpoint == "" {
		w := &game.StdoutWriter{}
		return w, w, nil
	}

	database := cfg.Outputs.GreptimeDatabase
	if database == "" {
		database = "public"
	}
	w, err := game.NewGreptimeDBWriter(endpoint, database)
	if err != nil {
		return nil, nil, err
	}
	return w, w, nil
}

// newTranscriptWriter creates a transcript sink without log export.
func newTranscriptWriter(cfg *config.Config, printOnly bool) (game.TranscriptWriter, error) {
	tw, _, err := baseWriters(cfg, printOnly)
	return tw, err
}
