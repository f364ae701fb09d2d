package schema

// SweepPoint is the metrics outcome for one value of the swept constraint.
type SweepPoint struct {
	Value   int     `json:"value" yaml:"value"`
	Metrics Metrics `json:"metrics" yaml:"metrics"`
}

// SweepResult holds a sweep of one constraint across its step grid.
type SweepResult struct {
	Constraint ConstraintID      `json:"constraint" yaml:"constraint"`
	ScenarioID string            `json:"scenario_id" yaml:"scenario_id"`
	Points     []SweepPoint      `json:"points" yaml:"points"`
	Best       map[MetricKey]int `json:"best" yaml:"best"` // constraint value giving the best outcome per metric
}
