package game

// MultiWriter fan-outs transcript and score rows to multiple writers.
type MultiWriter struct {
	transcriptWriters []TranscriptWriter
	scoreWriters      []ScoreWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(tws []TranscriptWriter, sws []ScoreWriter) *MultiWriter {
	return &MultiWriter{transcriptWriters: tws, scoreWriters: sws}
}

// Write sends a transcript row to all writers.
func (mw *MultiWriter) Write(rec TurnRecord) error {
	for _, w := range mw.transcriptWriters {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple transcript rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(recs []TurnRecord) error {
	for _, w := range mw.transcriptWriters {
		if bw, ok := w.(batchTranscriptWriter); ok {
			if err := bw.WriteBatch(recs); err != nil {
				return err
			}
			continue
		}
		for _, r := range recs {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteScore sends a score row to all score writers.
func (mw *MultiWriter) WriteScore(row ScoreRow) error {
	for _, w := range mw.scoreWriters {
		if err := w.WriteScore(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteScores sends multiple score rows to all score writers, using batch if supported.
func (mw *MultiWriter) WriteScores(rows []ScoreRow) error {
	for _, w := range mw.scoreWriters {
		if bw, ok := w.(batchScoreWriter); ok {
			if err := bw.WriteScores(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteScore(r); err != nil {
				return err
			}
		}
	}
	return nil
}
