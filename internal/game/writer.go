package game

import "time"

// TurnRecord is one agent response flattened for sinks and replay.
type TurnRecord struct {
	Simulation string    `json:"simulation"`
	Scenario   string    `json:"scenario"`
	Turn       int       `json:"turn"`
	Phase      Phase     `json:"phase"`
	Agent      Agent     `json:"agent"`
	ActionType string    `json:"action_type"`
	Summary    string    `json:"summary"`
	Content    string    `json:"content"`
	GridRefs   []string  `json:"grid_refs,omitempty"`
	Timestamp  time.Time `json:"ts"`
}

// ScoreRow is one side's analyst score for one turn, flattened for sinks.
type ScoreRow struct {
	Simulation string    `json:"simulation"`
	Scenario   string    `json:"scenario"`
	Turn       int       `json:"turn"`
	Side       string    `json:"side"`
	Score      Score     `json:"score"`
	Timestamp  time.Time `json:"ts"`
}

// TranscriptWriter receives agent responses as they are produced.
type TranscriptWriter interface {
	Write(rec TurnRecord) error
}

type batchTranscriptWriter interface {
	WriteBatch(recs []TurnRecord) error
}

// ScoreWriter receives analyst scores as they are produced.
type ScoreWriter interface {
	WriteScore(row ScoreRow) error
}

type batchScoreWriter interface {
	WriteScores(rows []ScoreRow) error
}
