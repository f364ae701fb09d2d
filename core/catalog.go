package core

import (
	"fmt"
	"maps"
	"slices"

	"github.com/huangsam/tradeoff/schema"
)

// BaselineScenarioID is the id of the all-100 preset.
const BaselineScenarioID = "baseline"

// enterpriseSaaSStudy is the case study the observed presets come from.
const enterpriseSaaSStudy = "enterprise-saas"

// Catalog is a read-only registry of scenarios, kept in insertion order.
type Catalog struct {
	scenarios []schema.Scenario
	index     map[string]int
}

// NewCatalog returns the built-in presets followed by any custom scenarios.
// Custom ids must be unique and must not shadow a built-in.
func NewCatalog(custom []schema.Scenario) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int)}
	for _, s := range builtinScenarios() {
		c.add(s)
	}
	for _, s := range custom {
		if s.ID == "" {
			return nil, fmt.Errorf("custom scenario %q has no id", s.Name)
		}
		if _, exists := c.index[s.ID]; exists {
			return nil, fmt.Errorf("custom scenario id %q collides with an existing scenario", s.ID)
		}
		s.Custom = true
		if s.Name == "" {
			s.Name = s.ID
		}
		c.add(s)
	}
	return c, nil
}

// DefaultCatalog returns a catalog with only the built-in presets.
func DefaultCatalog() *Catalog {
	c, _ := NewCatalog(nil)
	return c
}

func (c *Catalog) add(s schema.Scenario) {
	s.Constraints = maps.Clone(s.Constraints)
	s.Observed = maps.Clone(s.Observed)
	c.index[s.ID] = len(c.scenarios)
	c.scenarios = append(c.scenarios, s)
}

// List returns every scenario in catalog order.
func (c *Catalog) List() []schema.Scenario {
	out := make([]schema.Scenario, len(c.scenarios))
	for i, s := range c.scenarios {
		out[i] = cloneScenario(s)
	}
	return out
}

// Get returns the scenario with the given id.
func (c *Catalog) Get(id string) (schema.Scenario, bool) {
	i, ok := c.index[id]
	if !ok {
		return schema.Scenario{}, false
	}
	return cloneScenario(c.scenarios[i]), true
}

// Lookup returns the scenario with the given id or an error naming the known ids.
func (c *Catalog) Lookup(id string) (schema.Scenario, error) {
	s, ok := c.Get(id)
	if !ok {
		return schema.Scenario{}, fmt.Errorf("unknown scenario %q (known: %v)", id, c.IDs())
	}
	return s, nil
}

// IDs returns every scenario id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.scenarios))
	for i, s := range c.scenarios {
		ids[i] = s.ID
	}
	return ids
}

// ResolveSnapshot returns the snapshot a scenario produces on a fresh store,
// with overrides applied through SetConstraint semantics.
func ResolveSnapshot(constraints []schema.Constraint, scenario schema.Scenario, overrides schema.Snapshot) schema.Snapshot {
	store := NewStore(constraints, false)
	store.ApplyScenario(scenario)
	// Overrides are applied in sorted id order.
	for _, id := range slices.Sorted(maps.Keys(overrides)) {
		store.SetConstraint(id, overrides[id])
	}
	return store.Snapshot()
}

func cloneScenario(s schema.Scenario) schema.Scenario {
	s.Constraints = maps.Clone(s.Constraints)
	s.Observed = maps.Clone(s.Observed)
	return s
}

func preset(team, timeline, budget, complexity, risk, users int) map[schema.ConstraintID]int {
	return map[schema.ConstraintID]int{
		schema.TeamSize:   team,
		schema.Timeline:   timeline,
		schema.Budget:     budget,
		schema.Complexity: complexity,
		schema.MarketRisk: risk,
		schema.UserBase:   users,
	}
}

func observed(conversion, satisfaction, timeToValue, errorRate float64) map[schema.MetricKey]float64 {
	return map[schema.MetricKey]float64{
		schema.ConversionKey:   conversion,
		schema.SatisfactionKey: satisfaction,
		schema.TimeToValueKey:  timeToValue,
		schema.ErrorRateKey:    errorRate,
	}
}

func builtinScenarios() []schema.Scenario {
	return []schema.Scenario{
		{
			ID:          BaselineScenarioID,
			Name:        "Baseline",
			Description: "Every constraint at its nominal level.",
			Constraints: preset(100, 100, 100, 100, 100, 100),
		},
		{
			ID:          "lean",
			Name:        "Lean Startup",
			Description: "Small team, stretched timeline and budget, simpler scope, higher market risk.",
			Constraints: preset(50, 150, 50, 75, 150, 100),
		},
		{
			ID:          "enterprise",
			Name:        "Enterprise Scale",
			Description: "Large team and budget serving a wide audience with a complex, low-risk product.",
			Constraints: preset(150, 125, 150, 125, 50, 200),
		},
		{
			ID:          "innovation",
			Name:        "Innovation Focus",
			Description: "Bold bets: long timeline, high complexity and maximum market risk.",
			Constraints: preset(125, 175, 125, 150, 200, 150),
		},
		{
			ID:          "case-actual",
			Name:        "Actual Execution",
			Description: "What the enterprise SaaS redesign actually shipped with.",
			Study:       enterpriseSaaSStudy,
			Constraints: preset(80, 120, 110, 120, 80, 100),
			Observed:    observed(42, 4.6, 14, 2.1),
		},
		{
			ID:          "case-optimistic",
			Name:        "Optimistic Scenario",
			Description: "A larger team on a shorter timeline with more budget.",
			Study:       enterpriseSaaSStudy,
			Constraints: preset(120, 80, 150, 100, 60, 100),
			Observed:    observed(58, 4.8, 10, 1.5),
		},
		{
			ID:          "case-lean",
			Name:        "Lean Scenario",
			Description: "Half the team with a longer runway and a trimmed budget.",
			Study:       enterpriseSaaSStudy,
			Constraints: preset(50, 150, 60, 80, 120, 100),
			Observed:    observed(28, 4.1, 18, 3.2),
		},
	}
}
