// Package core has the constraint store, the metrics engine and the scenario logic.
package core

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/internal/outwriter"
	"github.com/huangsam/tradeoff/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error

// ExecuteSimulate applies the configured scenario and overrides to a fresh store
// and prints the resulting constraints and metrics next to the baseline.
// The quick model skips scenarios and evaluates its own three constraints.
func ExecuteSimulate(_ context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	if cfg.Model == schema.QuickModel {
		return executeQuickSimulate(cfg, start)
	}
	catalog, err := NewCatalog(cfg.CustomScenarios)
	if err != nil {
		return err
	}
	scenario, err := catalog.Lookup(cfg.ScenarioID)
	if err != nil {
		return err
	}

	rec, err := startRecording(cfg, mgr, "simulate")
	if err != nil {
		return fmt.Errorf("failed to start recording: %w", err)
	}
	defer finishRecording(rec)

	store := NewStore(cfg.Constraints, cfg.ClampMetrics)
	baseline := store.Metrics()
	rec.Attach(store)

	store.ApplyScenario(scenario)
	for _, id := range slices.Sorted(maps.Keys(cfg.Overrides)) {
		if _, ok := store.SetConstraint(id, cfg.Overrides[id]); !ok {
			return fmt.Errorf("unknown constraint %q", id)
		}
	}

	result := schema.SimulationResult{
		ScenarioID:  scenario.ID,
		Constraints: store.Constraints(),
		Metrics:     store.Metrics(),
		Baseline:    baseline,
	}
	return outwriter.PrintSimulationResult(result, cfg, time.Since(start))
}

// ExecuteScenariosList prints every scenario in the catalog.
func ExecuteScenariosList(_ context.Context, cfg *contract.Config, _ contract.RunManager) error {
	start := time.Now()
	catalog, err := NewCatalog(cfg.CustomScenarios)
	if err != nil {
		return err
	}
	return outwriter.PrintScenarioList(catalog.List(), cfg, time.Since(start))
}

// ExecuteScenarioShow prints one scenario with the values and metrics it resolves to.
func ExecuteScenarioShow(_ context.Context, cfg *contract.Config, _ contract.RunManager) error {
	start := time.Now()
	catalog, err := NewCatalog(cfg.CustomScenarios)
	if err != nil {
		return err
	}
	scenario, err := catalog.Lookup(cfg.ScenarioID)
	if err != nil {
		return err
	}
	snapshot := ResolveSnapshot(cfg.Constraints, scenario, nil)
	detail := schema.ScenarioDetail{
		Scenario: scenario,
		Snapshot: snapshot,
		Metrics:  EvaluateMetrics(snapshot, cfg.ClampMetrics),
	}
	return outwriter.PrintScenarioDetail(detail, cfg, time.Since(start))
}

// ExecuteCompare computes the metric deltas between the base and target scenarios.
func ExecuteCompare(_ context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	catalog, err := NewCatalog(cfg.CustomScenarios)
	if err != nil {
		return err
	}
	base, err := catalog.Lookup(cfg.BaseScenario)
	if err != nil {
		return fmt.Errorf("base: %w", err)
	}
	target, err := catalog.Lookup(cfg.TargetScenario)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	rec, err := startRecording(cfg, mgr, "compare")
	if err != nil {
		return fmt.Errorf("failed to start recording: %w", err)
	}
	defer finishRecording(rec)

	result := CompareScenarios(cfg.Constraints, base, target, cfg.ClampMetrics)
	_ = rec.Record(base.ID, ResolveSnapshot(cfg.Constraints, base, nil), result.BaseMetrics)
	_ = rec.Record(target.ID, ResolveSnapshot(cfg.Constraints, target, nil), result.TargetMetrics)

	return outwriter.PrintComparisonResult(result, cfg, time.Since(start))
}

// ExecuteSweep sweeps one constraint across its step grid.
func ExecuteSweep(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	if cfg.SweepConstraint == "" {
		return errors.New("--constraint is required")
	}
	catalog, err := NewCatalog(cfg.CustomScenarios)
	if err != nil {
		return err
	}
	scenario, err := catalog.Lookup(cfg.ScenarioID)
	if err != nil {
		return err
	}

	result, err := SweepConstraint(ctx, cfg.Constraints, scenario, cfg.SweepConstraint, cfg.Workers, cfg.ClampMetrics)
	if err != nil {
		return err
	}

	rec, err := startRecording(cfg, mgr, "sweep")
	if err != nil {
		return fmt.Errorf("failed to start recording: %w", err)
	}
	defer finishRecording(rec)
	base := ResolveSnapshot(cfg.Constraints, scenario, nil)
	for _, p := range result.Points {
		snapshot := base.Clone()
		snapshot[result.Constraint] = p.Value
		_ = rec.Record(scenario.ID, snapshot, p.Metrics)
	}

	return outwriter.PrintSweepResult(result, cfg, time.Since(start))
}

// ExecuteFormulas displays the formal definitions of all metrics.
// This is a static display that does not evaluate anything.
func ExecuteFormulas(_ context.Context, cfg *contract.Config, _ contract.RunManager) error {
	return outwriter.PrintFormulas(BuildFormulas(cfg.ClampMetrics), cfg)
}

// ExecuteTimeline prints the decision timeline through the configured lens.
// With Play set, events are printed one per interval until the last one or
// until ctx is cancelled.
func ExecuteTimeline(ctx context.Context, cfg *contract.Config, _ contract.RunManager) error {
	start := time.Now()
	events := DecisionTimeline()
	result, err := BuildTimeline(events, cfg.Lens)
	if err != nil {
		return err
	}
	if !cfg.Play {
		return outwriter.PrintTimelineResult(result, cfg, time.Since(start))
	}
	if cfg.Output != schema.TextOut {
		return fmt.Errorf("--play only supports text output (received %s)", cfg.Output)
	}

	player := NewPlayer(events, cfg.PlayInterval)
	err = player.Play(ctx, 0, func(i int, _ schema.DecisionEvent) {
		if werr := outwriter.WriteTimelineStep(os.Stdout, result, i, cfg); werr != nil {
			contract.LogWarn("Writing timeline step", werr)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
