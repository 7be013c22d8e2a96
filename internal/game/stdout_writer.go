// Writer implementation printing transcript rows to STDOUT
package game

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints transcript and score rows to STDOUT as JSON.
type StdoutWriter struct{}

// Write outputs a single transcript row.
func (w *StdoutWriter) Write(rec TurnRecord) error {
	data, _ := json.Marshal(rec)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple transcript rows.
func (w *StdoutWriter) WriteBatch(recs []TurnRecord) error {
	for _, r := range recs {
		_ = w.Write(r)
	}
	return nil
}

// WriteScore prints an analyst score row to STDOUT.
func (w *StdoutWriter) WriteScore(row ScoreRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteScores prints multiple score rows.
func (w *StdoutWriter) WriteScores(rows []ScoreRow) error {
	for _, r := range rows {
		_ = w.WriteScore(r)
	}
	return nil
}
