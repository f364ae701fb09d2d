// Package contract provides interfaces and shared utilities for the tradeoff CLI's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/tradeoff/schema"
)

// RunManager defines the interface for managing the run history store.
// This allows the persistence layer to be mocked for testing.
type RunManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for recording simulation runs and their snapshots.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(sessionID, command string, startTime time.Time, configParams map[string]any) (int64, error)

	// RecordSnapshot stores one constraint snapshot and the metrics it produced
	RecordSnapshot(record schema.RunMetricsRecord) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalSnapshots int32) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns returns every run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRunMetrics returns every recorded snapshot ordered by run and sequence
	GetAllRunMetrics() ([]schema.RunMetricsRecord, error)

	// Close closes the underlying connection
	Close() error
}
