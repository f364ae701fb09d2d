package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baselineRecord(runID int64, seq int32) schema.RunMetricsRecord {
	return schema.RunMetricsRecord{
		RunID:      runID,
		Seq:        seq,
		ScenarioID: "baseline",
		RecordedAt: time.Now(),
		Snapshot: schema.Snapshot{
			schema.TeamSize: 100, schema.Timeline: 100, schema.Budget: 100,
			schema.Complexity: 100, schema.MarketRisk: 100, schema.UserBase: 100,
		},
		Metrics: schema.Metrics{
			Conversion: 65, Satisfaction: 4.2, TimeToValue: 14, ErrorRate: 2.5,
			UserRetention: 78, DevelopmentCost: 100000, MarketShare: 15, InnovationScore: 1,
		},
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	runID, err := store.BeginRun("session", "simulate", time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.RecordSnapshot(baselineRecord(1, 1)))
	assert.NoError(t, store.EndRun(1, time.Now(), 1))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	assert.NoError(t, store.Close())
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("redis"), "")
	assert.Error(t, err)
}

func TestRunStore_SQLite(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Now().Add(-time.Second)
	runID, err := store.BeginRun("6f1c1f0e-2d7c-4a8e-9d1b-0c9f5c1a2b3c", "simulate", start, map[string]any{"scenario": "baseline"})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	first := baselineRecord(runID, 1)
	second := baselineRecord(runID, 2)
	second.ScenarioID = ""
	second.Snapshot = schema.Snapshot{schema.TeamSize: 200}
	second.Metrics.Conversion = 130

	require.NoError(t, store.RecordSnapshot(first))
	require.NoError(t, store.RecordSnapshot(second))
	require.NoError(t, store.EndRun(runID, time.Now(), 2))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "simulate", run.Command)
	assert.Equal(t, "6f1c1f0e-2d7c-4a8e-9d1b-0c9f5c1a2b3c", run.SessionID)
	assert.Equal(t, int32(2), run.TotalSnapshots)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.GreaterOrEqual(t, *run.RunDurationMs, int32(1000))
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"scenario":"baseline"}`, *run.ConfigParams)
	assert.WithinDuration(t, start, run.StartTime, time.Millisecond)

	records, err := store.GetAllRunMetrics()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int32(1), records[0].Seq)
	assert.Equal(t, "baseline", records[0].ScenarioID)
	assert.Equal(t, first.Metrics, records[0].Metrics)
	assert.Equal(t, first.Snapshot, records[0].Snapshot)

	// Missing ids are stored at the default value.
	assert.Equal(t, 200, records[1].Snapshot[schema.TeamSize])
	assert.Equal(t, schema.DefaultConstraintValue, records[1].Snapshot[schema.Budget])
	assert.Equal(t, 130.0, records[1].Metrics.Conversion)
}

func TestRunStore_DuplicateSeq(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun("s", "mcp", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordSnapshot(baselineRecord(runID, 1)))
	assert.Error(t, store.RecordSnapshot(baselineRecord(runID, 1)))
}

func TestRunStore_EndUnknownRun(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Error(t, store.EndRun(42, time.Now(), 0))
}

func TestRunStore_Status(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runsTable])

	for i := range 3 {
		runID, err := store.BeginRun("s", "sweep", time.Now().Add(time.Duration(i)*time.Second), nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordSnapshot(baselineRecord(runID, 1)))
		require.NoError(t, store.EndRun(runID, time.Now().Add(time.Duration(i+1)*time.Second), 1))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, int64(3), status.LastRunID)
	assert.Equal(t, 3, status.TotalSnapshots)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
	assert.Equal(t, int64(3), status.TableSizes[runMetricsTable])

	var buf bytes.Buffer
	PrintRunStatus(&buf, status)
	out := buf.String()
	assert.Contains(t, out, "Run Backend: sqlite")
	assert.Contains(t, out, "Total Runs: 3")
	assert.Contains(t, out, "tradeoff_run_metrics: 3 rows")
}

func TestPrintRunStatusDisconnected(t *testing.T) {
	var buf bytes.Buffer
	PrintRunStatus(&buf, schema.RunStatus{Backend: "none"})
	assert.Equal(t, "Run Backend: none\nConnected: false\n", buf.String())
}

func TestClearRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	assert.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))
	assert.Error(t, ClearRuns(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearRuns(schema.NoneBackend, "", ""))
	assert.Error(t, ClearRuns(schema.DatabaseBackend("redis"), "", ""))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`tradeoff_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"tradeoff_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"tradeoff_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?, ?", placeholders(schema.MySQLBackend, 3))
	assert.Equal(t, "?", placeholders(schema.SQLiteBackend, 1))
}

func TestParseTime(t *testing.T) {
	now := time.Now().UTC()

	got, err := parseTime(now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = parseTime(now.Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	got, err = parseTime([]byte("2026-10-17 09:30:00.123456"))
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())

	_, err = parseTime(42)
	assert.Error(t, err)
}

func TestRunMetricsColumnsMatchCreateQuery(t *testing.T) {
	query := getCreateRunMetricsQuery(schema.SQLiteBackend)
	for _, col := range runMetricsColumns() {
		assert.Contains(t, query, col+" ")
	}
}
