package schema

// Artifact is a document or asset produced around a decision.
type Artifact struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"` // document, diagram, spreadsheet, prototype, ...
}

// Alternative is an option that was considered and rejected.
type Alternative struct {
	Option string `json:"option" yaml:"option"`
	Reason string `json:"reason" yaml:"reason"`
	Impact string `json:"impact" yaml:"impact"`
}

// KPIChange records how a metric moved as a result of a decision.
type KPIChange struct {
	Metric string  `json:"metric" yaml:"metric"`
	Before float64 `json:"before" yaml:"before"`
	After  float64 `json:"after" yaml:"after"`
	Unit   string  `json:"unit" yaml:"unit"`
}

// Impact lists the positive, negative and neutral consequences of a decision.
type Impact struct {
	Positive []string `json:"positive" yaml:"positive"`
	Negative []string `json:"negative" yaml:"negative"`
	Neutral  []string `json:"neutral" yaml:"neutral"`
}

// DecisionEvent is one entry on the decision timeline.
type DecisionEvent struct {
	ID           string        `json:"id" yaml:"id"`
	Timestamp    string        `json:"timestamp" yaml:"timestamp"`
	Title        string        `json:"title" yaml:"title"`
	Description  string        `json:"description" yaml:"description"`
	Category     EventCategory `json:"category" yaml:"category"`
	Impact       Impact        `json:"impact" yaml:"impact"`
	Artifacts    []Artifact    `json:"artifacts" yaml:"artifacts"`
	Stakeholders []string      `json:"stakeholders" yaml:"stakeholders"`
	Rationale    string        `json:"rationale" yaml:"rationale"`
	Alternatives []Alternative `json:"alternatives" yaml:"alternatives"`
	KPIChanges   []KPIChange   `json:"kpi_changes" yaml:"kpi_changes"`
}

// LensView is the projection of a DecisionEvent through one lens.
// The concrete type is one of ExecutiveView, ProductView, EngineeringView or DesignView.
type LensView interface {
	Lens() Lens
	isLensView()
}

// EventHeader carries the fields every lens shows.
type EventHeader struct {
	ID          string        `json:"id" yaml:"id"`
	Timestamp   string        `json:"timestamp" yaml:"timestamp"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Category    EventCategory `json:"category" yaml:"category"`
}

// ExecutiveView focuses on KPIs and the reasoning behind the call.
type ExecutiveView struct {
	EventHeader  `yaml:",inline"`
	KPIChanges   []KPIChange   `json:"kpi_changes" yaml:"kpi_changes"`
	Rationale    string        `json:"rationale" yaml:"rationale"`
	Alternatives []Alternative `json:"alternatives" yaml:"alternatives"`
}

// ProductView focuses on consequences and who was involved.
type ProductView struct {
	EventHeader  `yaml:",inline"`
	Impact       Impact     `json:"impact" yaml:"impact"`
	Artifacts    []Artifact `json:"artifacts" yaml:"artifacts"`
	Stakeholders []string   `json:"stakeholders" yaml:"stakeholders"`
}

// EngineeringView focuses on consequences, diagrams and rejected options.
type EngineeringView struct {
	EventHeader  `yaml:",inline"`
	Impact       Impact        `json:"impact" yaml:"impact"`
	Diagrams     []Artifact    `json:"diagrams" yaml:"diagrams"`
	Alternatives []Alternative `json:"alternatives" yaml:"alternatives"`
}

// DesignView focuses on consequences, non-tabular artifacts and reasoning.
type DesignView struct {
	EventHeader `yaml:",inline"`
	Impact      Impact     `json:"impact" yaml:"impact"`
	Artifacts   []Artifact `json:"artifacts" yaml:"artifacts"`
	Rationale   string     `json:"rationale" yaml:"rationale"`
}

// Lens implements LensView.
func (ExecutiveView) Lens() Lens { return ExecutiveLens }

// Lens implements LensView.
func (ProductView) Lens() Lens { return ProductLens }

// Lens implements LensView.
func (EngineeringView) Lens() Lens { return EngineeringLens }

// Lens implements LensView.
func (DesignView) Lens() Lens { return DesignLens }

func (ExecutiveView) isLensView()   {}
func (ProductView) isLensView()     {}
func (EngineeringView) isLensView() {}
func (DesignView) isLensView()      {}

// TimelineResult holds every event of the timeline projected through one lens.
type TimelineResult struct {
	Lens  Lens       `json:"lens" yaml:"lens"`
	Name  string     `json:"name" yaml:"name"`
	Focus []string   `json:"focus" yaml:"focus"`
	Views []LensView `json:"views" yaml:"views"`
}
