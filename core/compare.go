package core

import (
	"math"

	"github.com/huangsam/tradeoff/schema"
)

// CompareScenarios evaluates both scenarios on a fresh store and reports the
// per-metric deltas from base to target. Observed case-study results of the
// target, when present, are carried alongside the modelled values.
func CompareScenarios(constraints []schema.Constraint, base, target schema.Scenario, clamped bool) schema.ComparisonResult {
	baseMetrics := EvaluateMetrics(ResolveSnapshot(constraints, base, nil), clamped)
	targetMetrics := EvaluateMetrics(ResolveSnapshot(constraints, target, nil), clamped)

	result := compareMetrics(baseMetrics, targetMetrics, target.Observed)
	result.Base = base
	result.Target = target
	return result
}

// compareMetrics builds the delta table between two metric sets.
func compareMetrics(before, after schema.Metrics, observed map[schema.MetricKey]float64) schema.ComparisonResult {
	result := schema.ComparisonResult{
		BaseMetrics:   before,
		TargetMetrics: after,
		Deltas:        make([]schema.MetricDelta, 0, len(schema.AllMetricKeys)),
	}

	for _, key := range schema.AllMetricKeys {
		b, a := before.Get(key), after.Get(key)
		d := schema.MetricDelta{
			Key:           key,
			Before:        b,
			After:         a,
			Delta:         a - b,
			PercentChange: percentChange(b, a),
			Direction:     schema.MetricDirections[key],
			Verdict:       schema.GetVerdict(key, a-b),
		}
		if v, ok := observed[key]; ok {
			d.Observed = &v
		}

		switch d.Verdict {
		case schema.BetterVerdict:
			result.Summary.Better++
		case schema.WorseVerdict:
			result.Summary.Worse++
		default:
			result.Summary.Same++
		}
		result.Deltas = append(result.Deltas, d)
	}
	return result
}

// percentChange returns the relative change in percent, or 0 when before is 0.
func percentChange(before, after float64) float64 {
	if before == 0 {
		return 0
	}
	return (after - before) / math.Abs(before) * 100
}
