package core

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/internal/outwriter"
	"github.com/huangsam/tradeoff/schema"
)

// ComputeQuickMetrics derives the quick model's four metrics from team size,
// deadline and platform complexity. Missing ids count as 100. Deadline and
// platform divide conversion, so they must be positive; every store built
// from GetQuickConstraints keeps them at 50 or more.
func ComputeQuickMetrics(snapshot schema.Snapshot) schema.QuickMetrics {
	team := factor(snapshot, schema.TeamSize)
	deadline := factor(snapshot, schema.Deadline)
	platform := factor(snapshot, schema.Platform)

	return schema.QuickMetrics{
		Conversion:   roundHundredth(68 * team * (1 / deadline) * (1 / platform)),
		Satisfaction: roundTenth(4.2 * team * (2 - deadline) * (2 - platform)),
		TimeToValue:  roundHalfUp(12 * (2 - team) * deadline * platform),
		ErrorRate:    roundTenth(2.1 * (2 - team) * deadline * platform),
	}
}

// ClampQuickMetrics bounds conversion to [0,100], satisfaction to [0,5] and
// the remaining metrics to be non-negative.
func ClampQuickMetrics(m schema.QuickMetrics) schema.QuickMetrics {
	return schema.QuickMetrics{
		Conversion:   clamp(m.Conversion, 0, percentCeiling),
		Satisfaction: clamp(m.Satisfaction, 0, satisfactionCeiling),
		TimeToValue:  math.Max(m.TimeToValue, 0),
		ErrorRate:    math.Max(m.ErrorRate, 0),
	}
}

// EvaluateQuickMetrics computes quick metrics and applies clamping when requested.
func EvaluateQuickMetrics(snapshot schema.Snapshot, clamped bool) schema.QuickMetrics {
	m := ComputeQuickMetrics(snapshot)
	if clamped {
		return ClampQuickMetrics(m)
	}
	return m
}

// QuickSimulate applies overrides to a fresh quick-model store and returns the
// result next to the quick baseline. Overrides are applied in sorted id order.
func QuickSimulate(overrides schema.Snapshot, clamped bool) (schema.QuickSimulationResult, error) {
	store := NewStore(schema.GetQuickConstraints(), clamped)
	baseline := EvaluateQuickMetrics(store.Snapshot(), clamped)
	for _, id := range slices.Sorted(maps.Keys(overrides)) {
		if _, ok := store.SetConstraint(id, overrides[id]); !ok {
			return schema.QuickSimulationResult{}, fmt.Errorf("unknown constraint %q for the quick model", id)
		}
	}
	return schema.QuickSimulationResult{
		Model:       schema.QuickModel,
		Constraints: store.Constraints(),
		Metrics:     EvaluateQuickMetrics(store.Snapshot(), clamped),
		Baseline:    baseline,
	}, nil
}

// executeQuickSimulate is the simulate command for the quick model.
// Scenarios and the run history only exist for the advanced model.
func executeQuickSimulate(cfg *contract.Config, start time.Time) error {
	if cfg.ScenarioID != contract.DefaultScenario {
		return fmt.Errorf("scenario %q is not available in the quick model", cfg.ScenarioID)
	}
	if cfg.Record {
		return errors.New("--record is not supported by the quick model")
	}
	result, err := QuickSimulate(cfg.Overrides, cfg.ClampMetrics)
	if err != nil {
		return err
	}
	return outwriter.PrintQuickSimulationResult(result, cfg, time.Since(start))
}

// roundHundredth rounds to two decimal places with ties going toward +Inf.
func roundHundredth(x float64) float64 {
	return roundHalfUp(x*100) / 100
}
