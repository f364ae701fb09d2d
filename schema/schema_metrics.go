package schema

// FormulaDefinition describes how one metric is derived.
type FormulaDefinition struct {
	Key       MetricKey      `json:"key" yaml:"key"`
	Name      string         `json:"name" yaml:"name"`
	Purpose   string         `json:"purpose" yaml:"purpose"`
	Inputs    []ConstraintID `json:"inputs" yaml:"inputs"`
	Formula   string         `json:"formula" yaml:"formula"`
	Rounding  string         `json:"rounding" yaml:"rounding"`
	Direction Direction      `json:"direction" yaml:"direction"`
}

// FormulasRenderModel contains all processed data needed for displaying metric definitions.
type FormulasRenderModel struct {
	Title       string              `json:"title" yaml:"title"`
	Description string              `json:"description" yaml:"description"`
	Clamped     bool                `json:"clamped" yaml:"clamped"`
	Formulas    []FormulaDefinition `json:"formulas" yaml:"formulas"`
}
