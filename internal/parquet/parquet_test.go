package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tradeoff/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRunRecords() []schema.RunRecord {
	now := time.Now()
	end := now.Add(2 * time.Second)
	duration := int32(2000)
	params := `{"scenario":"lean"}`
	return []schema.RunRecord{
		{
			RunID:          1,
			SessionID:      "6f1c1f0e-2d7c-4a8e-9d1b-0c9f5c1a2b3c",
			Command:        "simulate",
			StartTime:      now,
			EndTime:        &end,
			RunDurationMs:  &duration,
			TotalSnapshots: 2,
			ConfigParams:   &params,
		},
		{
			RunID:     2,
			SessionID: "0b7e9a44-51f2-4c3e-8c57-1d2e3f4a5b6c",
			Command:   "mcp",
			StartTime: now.Add(time.Minute),
			// still open: nullable fields stay nil
		},
	}
}

func sampleRunMetricsRecords() []schema.RunMetricsRecord {
	return []schema.RunMetricsRecord{
		{
			RunID:      1,
			Seq:        1,
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
		},
		{
			RunID:      1,
			Seq:        2,
			RecordedAt: time.Now(),
			Snapshot:   schema.Snapshot{schema.TeamSize: 200},
		},
	}
}

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Run))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id", "session_id", "command", "start_time",
		"end_time", "run_duration_ms", "total_snapshots", "config_params",
	}
	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestRunMetricsStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(RunMetrics))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id", "seq", "scenario_id", "recorded_at",
		"team_size", "timeline", "budget", "complexity", "market_risk", "user_base",
	}
	for _, key := range schema.AllMetricKeys {
		expectedColumns = append(expectedColumns, string(key))
	}
	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertRunRecords(sampleRunRecords())

	require.NoError(t, WriteRunsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Run](file)
	defer func() { _ = reader.Close() }()

	readData := make([]Run, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].SessionID, readData[i].SessionID)
		assert.Equal(t, data[i].Command, readData[i].Command)
		assert.Equal(t, data[i].TotalSnapshots, readData[i].TotalSnapshots)
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime)
		} else {
			require.NotNil(t, readData[i].EndTime)
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Microsecond)
		}
		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams)
		} else {
			require.NotNil(t, readData[i].ConfigParams)
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams)
		}
	}
}

func TestWriteRunMetricsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "run_metrics.parquet")
	data := ConvertRunMetricsRecords(sampleRunMetricsRecords())

	require.NoError(t, WriteRunMetricsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[RunMetrics](file)
	defer func() { _ = reader.Close() }()

	readData := make([]RunMetrics, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)
	assert.Equal(t, 65.0, readData[0].Conversion)
	assert.Equal(t, 4.2, readData[0].Satisfaction)
	assert.Equal(t, int32(200), readData[1].TeamSize)
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteRunsParquet(nil, filepath.Join(t.TempDir(), "missing", "runs.parquet"))
	assert.Error(t, err)
}

func TestConvertRunMetricsRecordsDefaultsMissingConstraints(t *testing.T) {
	out := ConvertRunMetricsRecords(sampleRunMetricsRecords())
	require.Len(t, out, 2)

	assert.Equal(t, "baseline", out[0].ScenarioID)
	assert.Equal(t, int32(200), out[1].TeamSize)
	assert.Equal(t, int32(schema.DefaultConstraintValue), out[1].Budget)
	assert.Empty(t, out[1].ScenarioID)
}

func TestConvertRunRecords(t *testing.T) {
	records := sampleRunRecords()
	out := ConvertRunRecords(records)
	require.Len(t, out, len(records))
	assert.Equal(t, records[0].SessionID, out[0].SessionID)
	assert.Equal(t, records[0].RunDurationMs, out[0].RunDurationMs)
	assert.Nil(t, out[1].EndTime)
}

func TestConvertEmpty(t *testing.T) {
	assert.Empty(t, ConvertRunRecords(nil))
	assert.Empty(t, ConvertRunMetricsRecords(nil))
}
