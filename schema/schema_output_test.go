package schema_test

import (
	"testing"

	"github.com/huangsam/tradeoff/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetVerdict(t *testing.T) {
	tests := []struct {
		name     string
		key      schema.MetricKey
		delta    float64
		expected schema.Verdict
	}{
		{"Conversion Up", schema.ConversionKey, 5, schema.BetterVerdict},
		{"Conversion Down", schema.ConversionKey, -5, schema.WorseVerdict},
		{"Cost Up", schema.DevelopmentCostKey, 1000, schema.WorseVerdict},
		{"Cost Down", schema.DevelopmentCostKey, -1000, schema.BetterVerdict},
		{"Error Rate Down", schema.ErrorRateKey, -0.3, schema.BetterVerdict},
		{"Unchanged", schema.SatisfactionKey, 0, schema.SameVerdict},
		{"Float Noise", schema.SatisfactionKey, 1e-12, schema.SameVerdict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetVerdict(tt.key, tt.delta))
		})
	}
}

func TestSummarizeScenarios(t *testing.T) {
	scenarios := []schema.Scenario{
		{ID: "baseline", Name: "Baseline"},
		{ID: "case-actual", Name: "Actual Execution", Study: "enterprise-saas", Observed: map[schema.MetricKey]float64{schema.ConversionKey: 42}},
		{ID: "mine", Name: "Mine", Custom: true},
	}

	summaries := schema.SummarizeScenarios(scenarios)

	assert.Len(t, summaries, 3)
	assert.False(t, summaries[0].HasObserved)
	assert.True(t, summaries[1].HasObserved)
	assert.Equal(t, "enterprise-saas", summaries[1].Study)
	assert.True(t, summaries[2].Custom)
}

func TestMetricsGet(t *testing.T) {
	m := schema.Metrics{
		Conversion: 1, Satisfaction: 2, TimeToValue: 3, ErrorRate: 4,
		UserRetention: 5, DevelopmentCost: 6, MarketShare: 7, InnovationScore: 8,
	}
	for i, key := range schema.AllMetricKeys {
		assert.Equal(t, float64(i+1), m.Get(key), "metric %s", key)
	}
	assert.Equal(t, 0.0, m.Get("unknown"))
}

func TestDefaultConstraintsWithinBounds(t *testing.T) {
	constraints := schema.GetDefaultConstraints()
	assert.Len(t, constraints, len(schema.AllConstraintIDs))
	for i, c := range constraints {
		assert.Equal(t, schema.AllConstraintIDs[i], c.ID)
		assert.LessOrEqual(t, c.Min, c.Value)
		assert.GreaterOrEqual(t, c.Max, c.Value)
		assert.Positive(t, c.Step)
	}

	// Mutating a returned table must not leak into the next call.
	constraints[0].Value = 1
	assert.Equal(t, schema.DefaultConstraintValue, schema.GetDefaultConstraints()[0].Value)
}

func TestSnapshotClone(t *testing.T) {
	s := schema.Snapshot{schema.TeamSize: 80}
	c := s.Clone()
	c[schema.TeamSize] = 120
	assert.Equal(t, 80, s[schema.TeamSize])
}
