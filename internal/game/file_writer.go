package game

import (
	"encoding/json"
	"os"
)

// FileWriter writes transcript and score rows to JSONL files.
type FileWriter struct {
	transcriptFile *os.File
	scoreFile      *os.File
	transcriptEnc  *json.Encoder
	scoreEnc       *json.Encoder
}

// NewFileWriter creates a FileWriter. scorePath may be empty to skip
// the score log.
func NewFileWriter(transcriptPath, scorePath string) (*FileWriter, error) {
	tf, err := os.Create(transcriptPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{transcriptFile: tf, transcriptEnc: json.NewEncoder(tf)}
	if scorePath != "" {
		sf, err := os.Create(scorePath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.scoreFile = sf
		fw.scoreEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// Write logs a single transcript row.
func (f *FileWriter) Write(rec TurnRecord) error {
	return f.transcriptEnc.Encode(rec)
}

// WriteBatch logs multiple transcript rows.
func (f *FileWriter) WriteBatch(recs []TurnRecord) error {
	for _, r := range recs {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteScore logs a single score row, if enabled.
func (f *FileWriter) WriteScore(row ScoreRow) error {
	if f.scoreEnc == nil {
		return nil
	}
	return f.scoreEnc.Encode(row)
}

// WriteScores logs multiple score rows.
func (f *FileWriter) WriteScores(rows []ScoreRow) error {
	for _, r := range rows {
		if err := f.WriteScore(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.transcriptFile != nil {
		if e := f.transcriptFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.scoreFile != nil {
		if e := f.scoreFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
