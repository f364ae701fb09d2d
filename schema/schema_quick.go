package schema

// Model selects which constraint-to-metrics model a simulation uses.
type Model string

// All simulation models supported.
const (
	AdvancedModel Model = "advanced" // default
	QuickModel    Model = "quick"
)

// ValidModels lists all valid simulation models.
var ValidModels = map[Model]struct{}{
	AdvancedModel: {},
	QuickModel:    {},
}

// Constraint identifiers used only by the quick model. It shares TeamSize.
const (
	Deadline ConstraintID = "deadline"
	Platform ConstraintID = "platform"
)

// QuickConstraintIDs lists the quick model's constraints in table order.
var QuickConstraintIDs = []ConstraintID{TeamSize, Deadline, Platform}

// QuickMetricKeys lists the metrics the quick model produces, in display order.
var QuickMetricKeys = []MetricKey{ConversionKey, SatisfactionKey, TimeToValueKey, ErrorRateKey}

// ConstraintIDs returns the constraint ids the model accepts.
func (m Model) ConstraintIDs() []ConstraintID {
	if m == QuickModel {
		return QuickConstraintIDs
	}
	return AllConstraintIDs
}

// GetQuickConstraints returns a fresh copy of the quick model's constraint table.
func GetQuickConstraints() []Constraint {
	return []Constraint{
		{
			ID: TeamSize, Label: "Team Size", Value: DefaultConstraintValue,
			Min: 20, Max: 200, Step: 10, Unit: "%", Category: TeamCategory,
			Impact: "Development velocity and coordination overhead.",
		},
		{
			ID: Deadline, Label: "Timeline", Value: DefaultConstraintValue,
			Min: 50, Max: 200, Step: 10, Unit: "%", Category: TimeCategory,
			Impact: "Feature scope against quality.",
		},
		{
			ID: Platform, Label: "Platform Complexity", Value: DefaultConstraintValue,
			Min: 50, Max: 150, Step: 10, Unit: "%", Category: TechnicalCategory,
			Impact: "Technical constraints and integration effort.",
		},
	}
}

// QuickMetrics holds the four headline metrics of the quick model.
type QuickMetrics struct {
	Conversion   float64 `json:"conversion" yaml:"conversion"`
	Satisfaction float64 `json:"satisfaction" yaml:"satisfaction"`
	TimeToValue  float64 `json:"time_to_value" yaml:"time_to_value"`
	ErrorRate    float64 `json:"error_rate" yaml:"error_rate"`
}

// Get returns the metric named by key, or 0 for a key the quick model lacks.
func (m QuickMetrics) Get(key MetricKey) float64 {
	switch key {
	case ConversionKey:
		return m.Conversion
	case SatisfactionKey:
		return m.Satisfaction
	case TimeToValueKey:
		return m.TimeToValue
	case ErrorRateKey:
		return m.ErrorRate
	default:
		return 0
	}
}

// QuickSimulationResult is the outcome of evaluating the quick model.
type QuickSimulationResult struct {
	Model       Model        `json:"model" yaml:"model"`
	Constraints []Constraint `json:"constraints" yaml:"constraints"`
	Metrics     QuickMetrics `json:"metrics" yaml:"metrics"`
	Baseline    QuickMetrics `json:"baseline" yaml:"baseline"`
}
