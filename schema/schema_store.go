package schema

import "time"

// RunRecord represents a row from the tradeoff_runs table.
type RunRecord struct {
	RunID          int64
	SessionID      string
	Command        string
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TotalSnapshots int32
	ConfigParams   *string
}

// RunMetricsRecord represents a row from the tradeoff_run_metrics table.
type RunMetricsRecord struct {
	RunID      int64
	Seq        int32
	ScenarioID string
	RecordedAt time.Time
	Snapshot   Snapshot
	Metrics    Metrics
}
