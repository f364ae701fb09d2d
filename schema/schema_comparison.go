package schema

// MetricDelta is the change of a single metric between two scenarios.
type MetricDelta struct {
	Key           MetricKey `json:"key" yaml:"key"`
	Before        float64   `json:"before" yaml:"before"`
	After         float64   `json:"after" yaml:"after"`
	Delta         float64   `json:"delta" yaml:"delta"`
	PercentChange float64   `json:"percent_change" yaml:"percent_change"`
	Direction     Direction `json:"direction" yaml:"direction"`
	Verdict       Verdict   `json:"verdict" yaml:"verdict"`
	Observed      *float64  `json:"observed,omitempty" yaml:"observed,omitempty"`
}

// ComparisonSummary counts the verdicts of a comparison.
type ComparisonSummary struct {
	Better int `json:"better" yaml:"better"`
	Worse  int `json:"worse" yaml:"worse"`
	Same   int `json:"same" yaml:"same"`
}

// ComparisonResult holds the metric deltas between a base and a target scenario.
type ComparisonResult struct {
	Base          Scenario          `json:"base" yaml:"base"`
	Target        Scenario          `json:"target" yaml:"target"`
	BaseMetrics   Metrics           `json:"base_metrics" yaml:"base_metrics"`
	TargetMetrics Metrics           `json:"target_metrics" yaml:"target_metrics"`
	Deltas        []MetricDelta     `json:"deltas" yaml:"deltas"`
	Summary       ComparisonSummary `json:"summary" yaml:"summary"`
}
