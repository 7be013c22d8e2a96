package game

import (
	"context"
	"log"
	"net"
	"strconv"
	"strings"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter persists transcript and score rows to GreptimeDB via
// the ingester client, for dashboarding runs across simulations.
// Tables are created automatically by GreptimeDB on first write.
type GreptimeDBWriter struct {
	client          *greptime.Client
	db              string
	transcriptTable string
	scoreTable      string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host, portStr = endpoint, ""
	}
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client:          client,
		db:              database,
		transcriptTable: "wargame_transcript",
		scoreTable:      "wargame_scores",
	}, nil
}

// Write inserts a single transcript row.
func (w *GreptimeDBWriter) Write(rec TurnRecord) error {
	return w.WriteBatch([]TurnRecord{rec})
}

// WriteBatch inserts multiple transcript rows.
func (w *GreptimeDBWriter) WriteBatch(recs []TurnRecord) error {
	if len(recs) == 0 {
		return nil
	}

	ctx := ingesterContext.New(context.Background())

	tbl, err := table.New(w.transcriptTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("simulation", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("scenario", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("agent", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("turn", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("phase", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("action_type", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("summary", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("grid_refs", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range recs {
		if err := tbl.AddRow(
			r.Simulation,
			r.Scenario,
			string(r.Agent),
			int64(r.Turn),
			string(r.Phase),
			r.ActionType,
			r.Summary,
			strings.Join(r.GridRefs, ","),
			r.Timestamp,
		); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeDBWriter] transcript write failed: %v", err)
		return err
	}
	return nil
}

// WriteScore inserts a single score row.
func (w *GreptimeDBWriter) WriteScore(row ScoreRow) error {
	return w.WriteScores([]ScoreRow{row})
}

// WriteScores inserts multiple score rows.
func (w *GreptimeDBWriter) WriteScores(rows []ScoreRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.New(context.Background())

	tbl, err := table.New(w.scoreTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("simulation", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("scenario", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("side", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("turn", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("geospatial_accuracy", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("strategic_coherence", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("resource_efficiency", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("adversarial_awareness", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("risk_calibration", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("overall", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.Simulation,
			r.Scenario,
			r.Side,
			int64(r.Turn),
			r.Score.GeospatialAccuracy,
			r.Score.StrategicCoherence,
			r.Score.ResourceEfficiency,
			r.Score.AdversarialAwareness,
			r.Score.RiskCalibration,
			r.Score.Overall,
			r.Timestamp,
		); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeDBWriter] score write failed: %v", err)
		return err
	}
	return nil
}
