package tui

import (
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"strategyforge/internal/game"
)

// TUIWriter renders a running simulation in a bubbletea TUI. It
// implements game.TranscriptWriter and game.ScoreWriter.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
// cancel is invoked when the user quits the TUI so the simulation
// can be stopped.
func NewTUIWriter(cancel func()) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newModel(cancel), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements TranscriptWriter.
func (w *TUIWriter) Write(rec game.TurnRecord) error {
	w.program.Send(transcriptMsg{rec: rec})
	return nil
}

// WriteBatch outputs multiple transcript records.
func (w *TUIWriter) WriteBatch(recs []game.TurnRecord) error {
	for _, r := range recs {
		_ = w.Write(r)
	}
	return nil
}

// WriteScore implements ScoreWriter.
func (w *TUIWriter) WriteScore(row game.ScoreRow) error {
	w.program.Send(scoreMsg{row: row})
	return nil
}

// WriteScores outputs multiple score rows.
func (w *TUIWriter) WriteScores(rows []game.ScoreRow) error {
	for _, r := range rows {
		_ = w.WriteScore(r)
	}
	return nil
}

// Observe forwards state snapshots to the TUI until the channel closes.
func (w *TUIWriter) Observe(states <-chan *game.State) {
	go func() {
		for s := range states {
			w.program.Send(snapshotMsg{state: s})
		}
	}()
}

// Done reports completion of the simulation, with its error if any.
func (w *TUIWriter) Done(err error) {
	w.program.Send(doneMsg{err: err})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}
