package core

import (
	"context"
	"testing"

	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepConstraint(t *testing.T) {
	baseline, _ := DefaultCatalog().Get(BaselineScenarioID)

	for _, workers := range []int{1, 4, 0} {
		result, err := SweepConstraint(context.Background(), nil, baseline, schema.TeamSize, workers, false)
		require.NoError(t, err)

		assert.Equal(t, schema.TeamSize, result.Constraint)
		assert.Equal(t, BaselineScenarioID, result.ScenarioID)
		require.Len(t, result.Points, 36) // 25..200 step 5
		assert.Equal(t, 25, result.Points[0].Value)
		assert.Equal(t, 200, result.Points[len(result.Points)-1].Value)
		for i := 1; i < len(result.Points); i++ {
			assert.Less(t, result.Points[i-1].Value, result.Points[i].Value)
		}

		// The grid passes through the baseline.
		assert.Equal(t, baselineMetrics, result.Points[15].Metrics)

		assert.Equal(t, 200, result.Best[schema.ConversionKey])
		assert.Equal(t, 200, result.Best[schema.TimeToValueKey])
		assert.Equal(t, 25, result.Best[schema.DevelopmentCostKey])
		// Team size does not move market share, so the lowest value wins the tie.
		assert.Equal(t, 25, result.Best[schema.MarketShareKey])
	}
}

func TestSweepConstraintKeepsScenario(t *testing.T) {
	lean, _ := DefaultCatalog().Get("lean")
	result, err := SweepConstraint(context.Background(), nil, lean, schema.UserBase, 2, false)
	require.NoError(t, err)
	require.Len(t, result.Points, 50) // 10..500 step 10

	var atHundred schema.Metrics
	for _, p := range result.Points {
		if p.Value == 100 {
			atHundred = p.Metrics
		}
	}
	assert.Equal(t, 20.0, atHundred.Conversion)
}

func TestSweepConstraintUnknown(t *testing.T) {
	baseline, _ := DefaultCatalog().Get(BaselineScenarioID)
	_, err := SweepConstraint(context.Background(), nil, baseline, "velocity", 2, false)
	assert.ErrorContains(t, err, "unknown constraint")
}

func TestSweepConstraintCancelled(t *testing.T) {
	baseline, _ := DefaultCatalog().Get(BaselineScenarioID)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SweepConstraint(ctx, nil, baseline, schema.UserBase, 2, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweepGrid(t *testing.T) {
	assert.Equal(t, []int{50, 75, 100}, sweepGrid(schema.Constraint{Min: 50, Max: 100, Step: 25}))
	assert.Equal(t, []int{0, 10}, sweepGrid(schema.Constraint{Min: 0, Max: 10, Step: 0}))
}
