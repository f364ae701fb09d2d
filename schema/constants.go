package schema

// Custom string types for type safety.
type (
	// ConstraintID identifies a constraint slider.
	ConstraintID string

	// Category groups constraints by the area they affect.
	Category string

	// MetricKey identifies a derived metric.
	MetricKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// Lens selects which facet of a decision event is shown.
	Lens string

	// EventCategory classifies a decision event.
	EventCategory string

	// Verdict describes how a metric moved between two scenarios.
	Verdict string

	// Direction states whether a metric improves by rising or falling.
	Direction string
)

// Constraint identifiers.
const (
	TeamSize   ConstraintID = "teamSize"
	Timeline   ConstraintID = "timeline"
	Budget     ConstraintID = "budget"
	Complexity ConstraintID = "complexity"
	MarketRisk ConstraintID = "marketRisk"
	UserBase   ConstraintID = "userBase"
)

// Constraint categories.
const (
	TeamCategory      Category = "team"
	TimeCategory      Category = "time"
	TechnicalCategory Category = "technical"
	BusinessCategory  Category = "business"
)

// Metric keys in display order.
const (
	ConversionKey      MetricKey = "conversion"
	SatisfactionKey    MetricKey = "satisfaction"
	TimeToValueKey     MetricKey = "time_to_value"
	ErrorRateKey       MetricKey = "error_rate"
	UserRetentionKey   MetricKey = "user_retention"
	DevelopmentCostKey MetricKey = "development_cost"
	MarketShareKey     MetricKey = "market_share"
	InnovationScoreKey MetricKey = "innovation_score"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	YAMLOut OutputMode = "yaml"
)

// All run history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All lenses supported.
const (
	ExecutiveLens   Lens = "executive" // default
	ProductLens     Lens = "product"
	EngineeringLens Lens = "engineering"
	DesignLens      Lens = "design"
)

// Decision event categories.
const (
	ResearchEvent  EventCategory = "research"
	DesignEvent    EventCategory = "design"
	TechnicalEvent EventCategory = "technical"
	BusinessEvent  EventCategory = "business"
	UserEvent      EventCategory = "user"
)

// Comparison verdicts.
const (
	BetterVerdict Verdict = "better"
	WorseVerdict  Verdict = "worse"
	SameVerdict   Verdict = "same"
)

// Metric directions.
const (
	HigherIsBetter Direction = "higher"
	LowerIsBetter  Direction = "lower"
)

// AllConstraintIDs lists every constraint in table order.
var AllConstraintIDs = []ConstraintID{TeamSize, Timeline, Budget, Complexity, MarketRisk, UserBase}

// AllMetricKeys lists every metric in display order.
var AllMetricKeys = []MetricKey{
	ConversionKey, SatisfactionKey, TimeToValueKey, ErrorRateKey,
	UserRetentionKey, DevelopmentCostKey, MarketShareKey, InnovationScoreKey,
}

// AllLenses lists every lens in display order.
var AllLenses = []Lens{ExecutiveLens, ProductLens, EngineeringLens, DesignLens}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
	YAMLOut: {},
}

// ValidDatabaseBackends lists all valid run history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidLenses lists all valid lenses.
var ValidLenses = map[Lens]struct{}{
	ExecutiveLens:   {},
	ProductLens:     {},
	EngineeringLens: {},
	DesignLens:      {},
}

// MetricDirections maps each metric to the direction in which it improves.
var MetricDirections = map[MetricKey]Direction{
	ConversionKey:      HigherIsBetter,
	SatisfactionKey:    HigherIsBetter,
	TimeToValueKey:     LowerIsBetter,
	ErrorRateKey:       LowerIsBetter,
	UserRetentionKey:   HigherIsBetter,
	DevelopmentCostKey: LowerIsBetter,
	MarketShareKey:     HigherIsBetter,
	InnovationScoreKey: HigherIsBetter,
}

// DefaultConstraintValue is the value every constraint starts at.
const DefaultConstraintValue = 100

// GetDefaultConstraints returns a fresh copy of the built-in constraint table.
func GetDefaultConstraints() []Constraint {
	return []Constraint{
		{
			ID: TeamSize, Label: "Team Size", Value: DefaultConstraintValue,
			Min: 25, Max: 200, Step: 5, Unit: "%", Category: TeamCategory,
			Impact: "Larger teams lift throughput and quality but cost more to coordinate.",
		},
		{
			ID: Timeline, Label: "Timeline", Value: DefaultConstraintValue,
			Min: 50, Max: 200, Step: 10, Unit: "%", Category: TimeCategory,
			Impact: "Longer timelines delay value and hurt conversion momentum.",
		},
		{
			ID: Budget, Label: "Budget", Value: DefaultConstraintValue,
			Min: 25, Max: 200, Step: 10, Unit: "%", Category: BusinessCategory,
			Impact: "More budget buys market reach and room to innovate.",
		},
		{
			ID: Complexity, Label: "Technical Complexity", Value: DefaultConstraintValue,
			Min: 50, Max: 150, Step: 5, Unit: "%", Category: TechnicalCategory,
			Impact: "Higher complexity slows delivery and raises error rates.",
		},
		{
			ID: MarketRisk, Label: "Market Risk", Value: DefaultConstraintValue,
			Min: 0, Max: 200, Step: 10, Unit: "%", Category: BusinessCategory,
			Impact: "Riskier bets shrink expected share but reward innovation.",
		},
		{
			ID: UserBase, Label: "Target User Base", Value: DefaultConstraintValue,
			Min: 10, Max: 500, Step: 10, Unit: "%", Category: BusinessCategory,
			Impact: "A broader audience amplifies conversion, retention and share.",
		},
	}
}
