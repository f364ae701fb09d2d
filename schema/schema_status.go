package schema

import "time"

// RunStatus represents the status of the run history store.
type RunStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int              `json:"total_runs"`
	LastRunID      int64            `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	OldestRunTime  time.Time        `json:"oldest_run_time"`
	TotalSnapshots int              `json:"total_snapshots"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}
