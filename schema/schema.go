// Package schema has the domain types shared across the simulator.
package schema

import "maps"

// Constraint is a bounded slider whose value feeds the metrics engine.
type Constraint struct {
	ID       ConstraintID `json:"id" yaml:"id"`
	Label    string       `json:"label" yaml:"label"`
	Value    int          `json:"value" yaml:"value"`
	Min      int          `json:"min" yaml:"min"`
	Max      int          `json:"max" yaml:"max"`
	Step     int          `json:"step" yaml:"step"`
	Unit     string       `json:"unit" yaml:"unit"`
	Category Category     `json:"category" yaml:"category"`
	Impact   string       `json:"impact" yaml:"impact"`
}

// Snapshot maps constraint ids to their current values.
type Snapshot map[ConstraintID]int

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return maps.Clone(s)
}

// Scenario is a named bundle of constraint values applied atomically.
type Scenario struct {
	ID          string                `json:"id" yaml:"id"`
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description" yaml:"description"`
	Study       string                `json:"study,omitempty" yaml:"study,omitempty"`
	Constraints map[ConstraintID]int  `json:"constraints" yaml:"constraints"`
	Observed    map[MetricKey]float64 `json:"observed,omitempty" yaml:"observed,omitempty"`
	Custom      bool                  `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Metrics holds the eight derived outcome metrics.
type Metrics struct {
	Conversion      float64 `json:"conversion" yaml:"conversion"`
	Satisfaction    float64 `json:"satisfaction" yaml:"satisfaction"`
	TimeToValue     float64 `json:"time_to_value" yaml:"time_to_value"`
	ErrorRate       float64 `json:"error_rate" yaml:"error_rate"`
	UserRetention   float64 `json:"user_retention" yaml:"user_retention"`
	DevelopmentCost float64 `json:"development_cost" yaml:"development_cost"`
	MarketShare     float64 `json:"market_share" yaml:"market_share"`
	InnovationScore float64 `json:"innovation_score" yaml:"innovation_score"`
}

// Get returns the metric named by key, or 0 for an unknown key.
func (m Metrics) Get(key MetricKey) float64 {
	switch key {
	case ConversionKey:
		return m.Conversion
	case SatisfactionKey:
		return m.Satisfaction
	case TimeToValueKey:
		return m.TimeToValue
	case ErrorRateKey:
		return m.ErrorRate
	case UserRetentionKey:
		return m.UserRetention
	case DevelopmentCostKey:
		return m.DevelopmentCost
	case MarketShareKey:
		return m.MarketShare
	case InnovationScoreKey:
		return m.InnovationScore
	default:
		return 0
	}
}

// ScenarioDetail is a scenario together with the values and metrics it resolves to.
type ScenarioDetail struct {
	Scenario Scenario `json:"scenario" yaml:"scenario"`
	Snapshot Snapshot `json:"snapshot" yaml:"snapshot"`
	Metrics  Metrics  `json:"metrics" yaml:"metrics"`
}

// SimulationResult is the outcome of evaluating one constraint snapshot.
type SimulationResult struct {
	ScenarioID  string       `json:"scenario_id" yaml:"scenario_id"`
	Constraints []Constraint `json:"constraints" yaml:"constraints"`
	Metrics     Metrics      `json:"metrics" yaml:"metrics"`
	Baseline    Metrics      `json:"baseline" yaml:"baseline"`
}
