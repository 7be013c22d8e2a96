package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"strategyforge/internal/config"
	"strategyforge/internal/game"
)

func TestNewWritersPrintOnly(t *testing.T) {
	tw, sw, cleanup, err := newWriters(config.Default(), true)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := tw.(*game.StdoutWriter); !ok {
		t.Fatalf("expected *game.StdoutWriter, got %T", tw)
	}
	if _, ok := sw.(*game.StdoutWriter); !ok {
		t.Fatalf("expected *game.StdoutWriter, got %T", sw)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	tw, _, cleanup, err := newWriters(config.Default(), false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := tw.(*game.StdoutWriter); !ok {
		t.Fatalf("expected *game.StdoutWriter, got %T", tw)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Outputs.TranscriptPath = filepath.Join(dir, "transcript.jsonl")
	cfg.Outputs.ScoresPath = filepath.Join(dir, "scores.jsonl")
	tw, sw, cleanup, err := newWriters(cfg, true)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := tw.(*game.MultiWriter); !ok {
		t.Fatalf("expected *game.MultiWriter, got %T", tw)
	}
	rec := game.TurnRecord{Simulation: "s1", Turn: 1, Agent: game.AgentBlueCommander, Timestamp: time.Now()}
	if err := tw.Write(rec); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	row := game.ScoreRow{Simulation: "s1", Turn: 1, Side: "blue", Timestamp: time.Now()}
	if err := sw.WriteScore(row); err != nil {
		t.Fatalf("write score failed: %v", err)
	}
	info, err := os.Stat(cfg.Outputs.TranscriptPath)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected transcript file to be non-empty")
	}
	scoreInfo, err := os.Stat(cfg.Outputs.ScoresPath)
	if err != nil {
		t.Fatalf("stat scores failed: %v", err)
	}
	if scoreInfo.Size() == 0 {
		t.Fatalf("expected scores file to be non-empty")
	}
}
