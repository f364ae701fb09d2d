package core

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quickBaseline = schema.QuickMetrics{Conversion: 68, Satisfaction: 4.2, TimeToValue: 12, ErrorRate: 2.1}

func TestComputeQuickMetrics(t *testing.T) {
	tests := []struct {
		name     string
		snapshot schema.Snapshot
		expected schema.QuickMetrics
	}{
		{
			name:     "baseline",
			snapshot: schema.Snapshot{schema.TeamSize: 100, schema.Deadline: 100, schema.Platform: 100},
			expected: quickBaseline,
		},
		{
			name:     "half team",
			snapshot: schema.Snapshot{schema.TeamSize: 50},
			expected: schema.QuickMetrics{Conversion: 34, Satisfaction: 2.1, TimeToValue: 18, ErrorRate: 3.2},
		},
		{
			name:     "conversion keeps two decimals",
			snapshot: schema.Snapshot{schema.TeamSize: 150, schema.Deadline: 130, schema.Platform: 120},
			expected: schema.QuickMetrics{Conversion: 65.38, Satisfaction: 3.5, TimeToValue: 9, ErrorRate: 1.6},
		},
		{
			name:     "longest deadline zeroes satisfaction",
			snapshot: schema.Snapshot{schema.TeamSize: 20, schema.Deadline: 200, schema.Platform: 150},
			expected: schema.QuickMetrics{Conversion: 4.53, Satisfaction: 0, TimeToValue: 65, ErrorRate: 11.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeQuickMetrics(tt.snapshot))
		})
	}
}

func TestComputeQuickMetricsMissingIDsCountAsDefault(t *testing.T) {
	assert.Equal(t, quickBaseline, ComputeQuickMetrics(nil))
	// Advanced-model ids have no effect on the quick model.
	assert.Equal(t, quickBaseline, ComputeQuickMetrics(schema.Snapshot{schema.Budget: 25, schema.UserBase: 500}))
}

func TestEvaluateQuickMetricsClamped(t *testing.T) {
	snap := schema.Snapshot{schema.TeamSize: 200, schema.Deadline: 50, schema.Platform: 50}
	raw := EvaluateQuickMetrics(snap, false)
	assert.Equal(t, 544.0, raw.Conversion)
	assert.Equal(t, 18.9, raw.Satisfaction)

	clamped := EvaluateQuickMetrics(snap, true)
	assert.Equal(t, schema.QuickMetrics{Conversion: 100, Satisfaction: 5, TimeToValue: 0, ErrorRate: 0}, clamped)
}

func TestQuickSimulate(t *testing.T) {
	t.Run("overrides snap to the quick grid", func(t *testing.T) {
		result, err := QuickSimulate(schema.Snapshot{schema.TeamSize: 47, schema.Platform: 9999}, false)
		require.NoError(t, err)
		assert.Equal(t, schema.QuickModel, result.Model)
		assert.Equal(t, quickBaseline, result.Baseline)

		values := make(map[schema.ConstraintID]int)
		for _, c := range result.Constraints {
			values[c.ID] = c.Value
		}
		assert.Equal(t, map[schema.ConstraintID]int{schema.TeamSize: 50, schema.Deadline: 100, schema.Platform: 150}, values)
		assert.Equal(t, ComputeQuickMetrics(schema.Snapshot{schema.TeamSize: 50, schema.Platform: 150}), result.Metrics)
	})

	t.Run("advanced ids are rejected", func(t *testing.T) {
		_, err := QuickSimulate(schema.Snapshot{schema.Budget: 120}, false)
		assert.ErrorContains(t, err, "quick model")
	})
}

func TestExecuteSimulateQuickModel(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the quick result", func(t *testing.T) {
		cfg := jsonConfig(t)
		cfg.Model = schema.QuickModel
		cfg.Overrides = schema.Snapshot{schema.Deadline: 130}
		require.NoError(t, ExecuteSimulate(ctx, cfg, nil))

		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var result schema.QuickSimulationResult
		require.NoError(t, json.Unmarshal(content, &result))
		assert.Equal(t, schema.QuickModel, result.Model)
		assert.Len(t, result.Constraints, len(schema.QuickConstraintIDs))
		assert.Equal(t, quickBaseline, result.Baseline)
		assert.Equal(t, 52.31, result.Metrics.Conversion)
	})

	t.Run("scenarios are rejected", func(t *testing.T) {
		cfg := jsonConfig(t)
		cfg.Model = schema.QuickModel
		cfg.ScenarioID = "lean"
		assert.ErrorContains(t, ExecuteSimulate(ctx, cfg, nil), "not available in the quick model")
	})

	t.Run("recording is rejected", func(t *testing.T) {
		cfg := jsonConfig(t)
		cfg.Model = schema.QuickModel
		cfg.Record = true
		assert.ErrorContains(t, ExecuteSimulate(ctx, cfg, nil), "--record")
	})
}
