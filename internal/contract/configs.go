package contract

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/tradeoff/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	MaxPrecision        = 2
	DefaultScenario     = "baseline"
	DefaultPlayInterval = "3s"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ScenarioRaw holds one custom scenario from the YAML config file.
type ScenarioRaw struct {
	ID          string         `mapstructure:"id"`
	Name        string         `mapstructure:"name"`
	Description string         `mapstructure:"description"`
	Constraints map[string]int `mapstructure:"constraints"`
}

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	Workers      int
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)
	UseColors    bool
	ClampMetrics bool

	Model      schema.Model
	ScenarioID string
	Overrides  schema.Snapshot

	BaseScenario   string
	TargetScenario string

	SweepConstraint schema.ConstraintID

	Lens         schema.Lens
	Play         bool
	PlayInterval time.Duration

	Record       bool
	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	// Constraints is the constraint table every store is built from.
	Constraints []schema.Constraint

	// CustomScenarios are appended to the built-in presets.
	CustomScenarios []schema.Scenario
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Precision    int    `mapstructure:"precision"`
	Width        int    `mapstructure:"width"`
	Color        string `mapstructure:"color"`
	ClampMetrics bool   `mapstructure:"clamp-metrics"`
	Workers      int    `mapstructure:"workers"`
	Record       bool   `mapstructure:"record"`
	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`

	// --- Fields from simulateCmd and sweepCmd ---
	Model      string `mapstructure:"model"`
	Scenario   string `mapstructure:"scenario"`
	Set        string `mapstructure:"set"`
	Constraint string `mapstructure:"constraint"`

	// --- Fields from compareCmd ---
	Base   string `mapstructure:"base"`
	Target string `mapstructure:"target"`

	// --- Fields from timelineCmd ---
	Lens     string `mapstructure:"lens"`
	Play     bool   `mapstructure:"play"`
	Interval string `mapstructure:"interval"`

	// --- Custom scenarios from config file ---
	Scenarios []ScenarioRaw `mapstructure:"scenarios"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Overrides = maps.Clone(c.Overrides)
	clone.Constraints = slices.Clone(c.Constraints)
	if c.CustomScenarios != nil {
		clone.CustomScenarios = make([]schema.Scenario, len(c.CustomScenarios))
		for i, s := range c.CustomScenarios {
			s.Constraints = maps.Clone(s.Constraints)
			s.Observed = maps.Clone(s.Observed)
			clone.CustomScenarios[i] = s
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.Constraints = schema.GetDefaultConstraints()

	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processSimulation(cfg, input); err != nil {
		return err
	}
	if err := processTimeline(cfg, input); err != nil {
		return err
	}
	if err := processCustomScenarios(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the run history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := input.RunBackend
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}

// validateSimpleInputs processes and validates the output and runtime fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.ClampMetrics = input.ClampMetrics
	cfg.Record = input.Record

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml", input.Output)
	}

	return nil
}

// processSimulation handles scenario selection, overrides and the sweep target.
func processSimulation(cfg *Config, input *ConfigRawInput) error {
	cfg.ScenarioID = strings.TrimSpace(input.Scenario)
	if cfg.ScenarioID == "" {
		cfg.ScenarioID = DefaultScenario
	}
	cfg.BaseScenario = strings.TrimSpace(input.Base)
	if cfg.BaseScenario == "" {
		cfg.BaseScenario = DefaultScenario
	}
	cfg.TargetScenario = strings.TrimSpace(input.Target)

	cfg.Model = schema.AdvancedModel
	if raw := strings.TrimSpace(input.Model); raw != "" {
		cfg.Model = schema.Model(strings.ToLower(raw))
		if _, ok := schema.ValidModels[cfg.Model]; !ok {
			return fmt.Errorf("invalid model '%s'. must be advanced, quick", input.Model)
		}
	}

	overrides, err := ParseModelOverrides(input.Set, cfg.Model)
	if err != nil {
		return fmt.Errorf("invalid --set format: %w", err)
	}
	cfg.Overrides = overrides

	cfg.SweepConstraint = ""
	if raw := strings.TrimSpace(input.Constraint); raw != "" {
		id, ok := ResolveConstraintID(raw)
		if !ok {
			return fmt.Errorf("invalid constraint '%s'. must be one of %v", raw, schema.AllConstraintIDs)
		}
		cfg.SweepConstraint = id
	}
	return nil
}

// processTimeline handles the lens and playback parameters.
func processTimeline(cfg *Config, input *ConfigRawInput) error {
	cfg.Lens = schema.ExecutiveLens
	if input.Lens != "" {
		cfg.Lens = schema.Lens(strings.ToLower(input.Lens))
		if _, ok := schema.ValidLenses[cfg.Lens]; !ok {
			return fmt.Errorf("invalid lens '%s'. must be executive, product, engineering, design", input.Lens)
		}
	}

	cfg.Play = input.Play
	interval := input.Interval
	if interval == "" {
		interval = DefaultPlayInterval
	}
	d, err := time.ParseDuration(interval)
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("interval must be positive (received %s)", interval)
	}
	cfg.PlayInterval = d
	return nil
}

// processCustomScenarios converts the config file scenarios and checks them against the constraint bounds.
func processCustomScenarios(cfg *Config, input *ConfigRawInput) error {
	bounds := make(map[schema.ConstraintID]schema.Constraint, len(cfg.Constraints))
	for _, c := range cfg.Constraints {
		bounds[c.ID] = c
	}

	seen := make(map[string]struct{}, len(input.Scenarios))
	cfg.CustomScenarios = make([]schema.Scenario, 0, len(input.Scenarios))
	for i, raw := range input.Scenarios {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			return fmt.Errorf("scenarios[%d] is missing an id", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("scenario id %q is defined more than once", id)
		}
		seen[id] = struct{}{}

		values := make(map[schema.ConstraintID]int, len(raw.Constraints))
		for key, v := range raw.Constraints {
			cid, ok := ResolveConstraintID(key)
			if !ok {
				return fmt.Errorf("scenario %q has unknown constraint '%s'", id, key)
			}
			c := bounds[cid]
			if v < c.Min || v > c.Max {
				return fmt.Errorf("scenario %q sets %s to %d, outside [%d, %d]", id, cid, v, c.Min, c.Max)
			}
			values[cid] = v
		}

		cfg.CustomScenarios = append(cfg.CustomScenarios, schema.Scenario{
			ID:          id,
			Name:        strings.TrimSpace(raw.Name),
			Description: raw.Description,
			Constraints: values,
			Custom:      true,
		})
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ResolveConstraintID matches a constraint id case-insensitively.
// Viper lowercases map keys, so config file ids arrive as "teamsize".
func ResolveConstraintID(s string) (schema.ConstraintID, bool) {
	return resolveModelConstraintID(s, schema.AdvancedModel)
}

func resolveModelConstraintID(s string, model schema.Model) (schema.ConstraintID, bool) {
	s = strings.TrimSpace(s)
	for _, id := range model.ConstraintIDs() {
		if strings.EqualFold(string(id), s) {
			return id, true
		}
	}
	return "", false
}

// ParseOverrides parses a string like "teamSize:80,budget:120" into a snapshot.
// Later entries for the same id win.
func ParseOverrides(s string) (schema.Snapshot, error) {
	return ParseModelOverrides(s, schema.AdvancedModel)
}

// ParseModelOverrides is ParseOverrides against the constraint ids of model.
func ParseModelOverrides(s string, model schema.Model) (schema.Snapshot, error) {
	overrides := make(schema.Snapshot)
	if strings.TrimSpace(s) == "" {
		return overrides, nil
	}

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid override '%s', expected 'constraint:value'", part)
		}

		idStr := strings.TrimSpace(keyValue[0])
		valueStr := strings.TrimSpace(keyValue[1])

		id, ok := resolveModelConstraintID(idStr, model)
		if !ok {
			return nil, fmt.Errorf("unknown constraint '%s'", idStr)
		}

		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s' for constraint %s: %w", valueStr, id, err)
		}
		overrides[id] = value
	}

	return overrides, nil
}
