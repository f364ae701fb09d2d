package core

import (
	"math"

	"github.com/huangsam/tradeoff/schema"
)

// Upper bounds used when metrics clamping is enabled.
const (
	percentCeiling      = 100.0
	satisfactionCeiling = 5.0
)

// ComputeMetrics derives the eight outcome metrics from a constraint snapshot.
// Each value is normalized to a factor (value/100); a missing id counts as 100.
// The function is pure and never fails, even at the extremes of the ranges.
func ComputeMetrics(snapshot schema.Snapshot) schema.Metrics {
	team := factor(snapshot, schema.TeamSize)
	timeline := factor(snapshot, schema.Timeline)
	budget := factor(snapshot, schema.Budget)
	complexity := factor(snapshot, schema.Complexity)
	risk := factor(snapshot, schema.MarketRisk)
	users := factor(snapshot, schema.UserBase)

	// Products are evaluated left to right with the constant first; regrouping
	// them moves results across .5 rounding ties.
	return schema.Metrics{
		Conversion:      roundHalfUp(65 * team * (2 - timeline) * (2 - complexity) * math.Sqrt(users)),
		Satisfaction:    roundTenth(4.2 * team * (2 - timeline) * (2 - complexity) * math.Sqrt(users)),
		TimeToValue:     roundHalfUp(14 * (2 - team) * timeline * complexity),
		ErrorRate:       roundTenth(2.5 * (2 - team) * timeline * complexity),
		UserRetention:   roundHalfUp(78 * team * (2 - complexity) * math.Sqrt(users)),
		DevelopmentCost: roundHalfUp(100000 * team * timeline * complexity),
		MarketShare:     roundHalfUp(15 * budget * (2 - risk) * math.Sqrt(users)),
		InnovationScore: roundHalfUp(70 * risk * complexity * budget / 100),
	}
}

// ClampMetrics bounds percentage-like metrics to [0,100], satisfaction to [0,5]
// and every other metric to be non-negative.
func ClampMetrics(m schema.Metrics) schema.Metrics {
	return schema.Metrics{
		Conversion:      clamp(m.Conversion, 0, percentCeiling),
		Satisfaction:    clamp(m.Satisfaction, 0, satisfactionCeiling),
		TimeToValue:     math.Max(m.TimeToValue, 0),
		ErrorRate:       math.Max(m.ErrorRate, 0),
		UserRetention:   clamp(m.UserRetention, 0, percentCeiling),
		DevelopmentCost: math.Max(m.DevelopmentCost, 0),
		MarketShare:     clamp(m.MarketShare, 0, percentCeiling),
		InnovationScore: clamp(m.InnovationScore, 0, percentCeiling),
	}
}

// EvaluateMetrics computes metrics and applies clamping when requested.
func EvaluateMetrics(snapshot schema.Snapshot, clamped bool) schema.Metrics {
	m := ComputeMetrics(snapshot)
	if clamped {
		return ClampMetrics(m)
	}
	return m
}

// factor returns the normalized value of a constraint, defaulting to 1.0.
func factor(snapshot schema.Snapshot, id schema.ConstraintID) float64 {
	v, ok := snapshot[id]
	if !ok {
		v = schema.DefaultConstraintValue
	}
	f := float64(v) / 100
	if f < 0 {
		return 0 // negative inputs count as zero
	}
	return f
}

// roundHalfUp rounds to the nearest integer with ties going toward +Inf.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// roundTenth rounds to one decimal place with ties going toward +Inf.
func roundTenth(x float64) float64 {
	return roundHalfUp(x*10) / 10
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
