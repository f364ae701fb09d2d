package schema

// verdictEpsilon absorbs float noise when deciding whether a metric moved.
const verdictEpsilon = 1e-9

// GetVerdict returns whether a delta on the given metric is an improvement.
func GetVerdict(key MetricKey, delta float64) Verdict {
	switch {
	case delta > verdictEpsilon:
		if MetricDirections[key] == LowerIsBetter {
			return WorseVerdict
		}
		return BetterVerdict
	case delta < -verdictEpsilon:
		if MetricDirections[key] == LowerIsBetter {
			return BetterVerdict
		}
		return WorseVerdict
	default:
		return SameVerdict
	}
}

// ScenarioSummary is the listing form of a Scenario.
type ScenarioSummary struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Study       string `json:"study,omitempty" yaml:"study,omitempty"`
	Custom      bool   `json:"custom,omitempty" yaml:"custom,omitempty"`
	HasObserved bool   `json:"has_observed" yaml:"has_observed"`
}

// SummarizeScenarios converts scenarios to their listing form.
func SummarizeScenarios(scenarios []Scenario) []ScenarioSummary {
	output := make([]ScenarioSummary, len(scenarios))
	for i, s := range scenarios {
		output[i] = ScenarioSummary{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Study:       s.Study,
			Custom:      s.Custom,
			HasObserved: len(s.Observed) > 0,
		}
	}
	return output
}
