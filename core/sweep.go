package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/huangsam/tradeoff/schema"
)

// SweepConstraint evaluates the metrics for every grid value of one constraint
// while all other constraints stay at the scenario's values. Points are computed
// by a pool of workers and returned in ascending value order.
func SweepConstraint(ctx context.Context, constraints []schema.Constraint, scenario schema.Scenario, id schema.ConstraintID, workers int, clamped bool) (schema.SweepResult, error) {
	store := NewStore(constraints, clamped)
	target, ok := store.Get(id)
	if !ok {
		return schema.SweepResult{}, fmt.Errorf("unknown constraint %q", id)
	}
	store.ApplyScenario(scenario)
	base := store.Snapshot()

	values := sweepGrid(target)
	points, err := sweepValues(ctx, base, id, values, max(workers, 1), clamped)
	if err != nil {
		return schema.SweepResult{}, err
	}

	return schema.SweepResult{
		Constraint: id,
		ScenarioID: scenario.ID,
		Points:     points,
		Best:       bestValues(points),
	}, nil
}

// sweepGrid returns min, min+step, ... up to max.
func sweepGrid(c schema.Constraint) []int {
	if c.Step <= 0 {
		return []int{c.Min, c.Max}
	}
	values := make([]int, 0, (c.Max-c.Min)/c.Step+1)
	for v := c.Min; v <= c.Max; v += c.Step {
		values = append(values, v)
	}
	return values
}

// sweepValues fans the grid values out to a worker pool.
func sweepValues(ctx context.Context, base schema.Snapshot, id schema.ConstraintID, values []int, workers int, clamped bool) ([]schema.SweepPoint, error) {
	valueCh := make(chan int, len(values))
	pointCh := make(chan schema.SweepPoint, len(values))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for v := range valueCh {
				if ctx.Err() != nil {
					continue // drain without work
				}
				snap := base.Clone()
				snap[id] = v
				pointCh <- schema.SweepPoint{Value: v, Metrics: EvaluateMetrics(snap, clamped)}
			}
		})
	}

	for _, v := range values {
		valueCh <- v
	}
	close(valueCh)

	wg.Wait()
	close(pointCh)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sweep interrupted: %w", err)
	}

	points := make([]schema.SweepPoint, 0, len(values))
	for p := range pointCh {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Value < points[j].Value })
	return points, nil
}

// bestValues picks, per metric, the lowest constraint value reaching the best outcome.
func bestValues(points []schema.SweepPoint) map[schema.MetricKey]int {
	best := make(map[schema.MetricKey]int, len(schema.AllMetricKeys))
	if len(points) == 0 {
		return best
	}
	for _, key := range schema.AllMetricKeys {
		bestIdx := 0
		for i := 1; i < len(points); i++ {
			delta := points[i].Metrics.Get(key) - points[bestIdx].Metrics.Get(key)
			if schema.GetVerdict(key, delta) == schema.BetterVerdict {
				bestIdx = i
			}
		}
		best[key] = points[bestIdx].Value
	}
	return best
}
