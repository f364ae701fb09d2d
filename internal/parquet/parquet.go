// Package parquet provides data structures and functions for exporting tradeoff
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/tradeoff/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single recorded command run.
// This struct maps to the tradeoff_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// SessionID groups runs from the same process or MCP session
	SessionID string `parquet:"session_id,snappy"`

	// Command is the CLI command or MCP tool that produced the run
	Command string `parquet:"command,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalSnapshots is the number of snapshots recorded in this run
	TotalSnapshots int32 `parquet:"total_snapshots,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunMetrics is one constraint snapshot and the metrics it produced.
// This struct maps to the tradeoff_run_metrics database table.
type RunMetrics struct {
	RunID      int64     `parquet:"run_id,snappy"`
	Seq        int32     `parquet:"seq,snappy"`
	ScenarioID string    `parquet:"scenario_id,snappy"`
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	TeamSize   int32 `parquet:"team_size,snappy"`
	Timeline   int32 `parquet:"timeline,snappy"`
	Budget     int32 `parquet:"budget,snappy"`
	Complexity int32 `parquet:"complexity,snappy"`
	MarketRisk int32 `parquet:"market_risk,snappy"`
	UserBase   int32 `parquet:"user_base,snappy"`

	Conversion      float64 `parquet:"conversion,snappy"`
	Satisfaction    float64 `parquet:"satisfaction,snappy"`
	TimeToValue     float64 `parquet:"time_to_value,snappy"`
	ErrorRate       float64 `parquet:"error_rate,snappy"`
	UserRetention   float64 `parquet:"user_retention,snappy"`
	DevelopmentCost float64 `parquet:"development_cost,snappy"`
	MarketShare     float64 `parquet:"market_share,snappy"`
	InnovationScore float64 `parquet:"innovation_score,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunMetricsParquet writes a slice of RunMetrics structs to a Parquet file.
func WriteRunMetricsParquet(data []RunMetrics, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows with a schema derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close writes the footer.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:          record.RunID,
			SessionID:      record.SessionID,
			Command:        record.Command,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalSnapshots: record.TotalSnapshots,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertRunMetricsRecords converts schema.RunMetricsRecord to RunMetrics for Parquet export.
func ConvertRunMetricsRecords(records []schema.RunMetricsRecord) []RunMetrics {
	result := make([]RunMetrics, len(records))
	for i, record := range records {
		value := func(id schema.ConstraintID) int32 {
			if v, ok := record.Snapshot[id]; ok {
				return int32(v)
			}
			return schema.DefaultConstraintValue
		}
		m := record.Metrics
		result[i] = RunMetrics{
			RunID:      record.RunID,
			Seq:        record.Seq,
			ScenarioID: record.ScenarioID,
			RecordedAt: record.RecordedAt,

			TeamSize:   value(schema.TeamSize),
			Timeline:   value(schema.Timeline),
			Budget:     value(schema.Budget),
			Complexity: value(schema.Complexity),
			MarketRisk: value(schema.MarketRisk),
			UserBase:   value(schema.UserBase),

			Conversion:      m.Conversion,
			Satisfaction:    m.Satisfaction,
			TimeToValue:     m.TimeToValue,
			ErrorRate:       m.ErrorRate,
			UserRetention:   m.UserRetention,
			DevelopmentCost: m.DevelopmentCost,
			MarketShare:     m.MarketShare,
			InnovationScore: m.InnovationScore,
		}
	}
	return result
}
