package game

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWriterWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	tp := filepath.Join(dir, "transcript.jsonl")
	sp := filepath.Join(dir, "scores.jsonl")

	fw, err := NewFileWriter(tp, sp)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	recs := []TurnRecord{
		{Simulation: "sim-1", Turn: 1, Agent: AgentBlueCommander, Summary: "hold"},
		{Simulation: "sim-1", Turn: 1, Agent: AgentRedCommander, Summary: "advance"},
	}
	if err := fw.WriteBatch(recs); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if err := fw.WriteScore(ScoreRow{Simulation: "sim-1", Turn: 1, Side: "blue", Score: Score{Overall: 7}}); err != nil {
		t.Fatalf("WriteScore: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(tp)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec TurnRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %d: %v", lines+1, err)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("transcript lines = %d, want 2", lines)
	}

	data, err := os.ReadFile(sp)
	if err != nil {
		t.Fatal(err)
	}
	var row ScoreRow
	if err := json.Unmarshal(data, &row); err != nil {
		t.Fatalf("score row: %v", err)
	}
	if row.Score.Overall != 7 {
		t.Errorf("overall = %v", row.Score.Overall)
	}
}

func TestFileWriterSkipsScoresWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(filepath.Join(dir, "t.jsonl"), "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()
	if err := fw.WriteScore(ScoreRow{Side: "blue"}); err != nil {
		t.Errorf("WriteScore with no score file: %v", err)
	}
}

func TestMultiWriterFanOutAndBatchUpgrade(t *testing.T) {
	plain := &memWriter{}
	batch := &batchMemWriter{}
	mw := NewMultiWriter(
		[]TranscriptWriter{plain, batch},
		[]ScoreWriter{plain, batch},
	)

	recs := []TurnRecord{{Turn: 1}, {Turn: 2}}
	if err := mw.WriteBatch(recs); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if len(plain.records) != 2 {
		t.Errorf("plain writer records = %d", len(plain.records))
	}
	if batch.batchCalls != 1 || len(batch.records) != 2 {
		t.Errorf("batch writer calls=%d records=%d", batch.batchCalls, len(batch.records))
	}

	rows := []ScoreRow{{Side: "blue"}, {Side: "red"}}
	if err := mw.WriteScores(rows); err != nil {
		t.Fatalf("WriteScores: %v", err)
	}
	if len(plain.scores) != 2 || len(batch.scores) != 2 {
		t.Errorf("scores = %d/%d", len(plain.scores), len(batch.scores))
	}
}

// batchMemWriter exercises the batch upgrade paths.
type batchMemWriter struct {
	memWriter
	batchCalls int
}

func (b *batchMemWriter) WriteBatch(recs []TurnRecord) error {
	b.batchCalls++
	b.records = append(b.records, recs...)
	return nil
}

func (b *batchMemWriter) WriteScores(rows []ScoreRow) error {
	b.scores = append(b.scores, rows...)
	return nil
}

func TestReplayLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.jsonl")
	fw, err := NewFileWriter(path, "")
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := fw.Write(TurnRecord{Turn: i + 1, Timestamp: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatal(err)
		}
	}
	fw.Close()

	sink := &memWriter{}
	// speed 0 disables delays so the test runs instantly.
	if err := ReplayLogFile(path, sink, 0); err != nil {
		t.Fatalf("ReplayLogFile: %v", err)
	}
	if len(sink.records) != 3 {
		t.Fatalf("replayed = %d, want 3", len(sink.records))
	}
	if sink.records[2].Turn != 3 {
		t.Errorf("order broken: %+v", sink.records)
	}
}
