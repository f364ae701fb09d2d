// Package cmd defines the command-line interface for tradeoff.
package cmd

import (
	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(formulasCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the scenarios subcommands to the parent scenarios command
	scenariosCmd.AddCommand(scenariosListCmd)
	scenariosCmd.AddCommand(scenariosShowCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("clamp-metrics", false, "Clamp metrics to their valid ranges (0-100%, 0-5, >= 0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Bool("record", false, "Record the run and its constraint snapshots in the run history")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("scenario", contract.DefaultScenario, "Scenario to start from")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of simulateCmd to Viper
	simulateCmd.Flags().String("set", "", "Constraint overrides (format: 'teamSize:80,budget:120')")
	simulateCmd.Flags().String("model", string(schema.AdvancedModel), "Metrics model: advanced or quick")
	if err := viper.BindPFlags(simulateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding simulate flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("base", contract.DefaultScenario, "Scenario for the BEFORE state")
	compareCmd.Flags().String("target", "", "Scenario for the AFTER state")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of sweepCmd to Viper
	sweepCmd.Flags().String("constraint", "", "Constraint to sweep across its step grid")
	if err := viper.BindPFlags(sweepCmd.Flags()); err != nil {
		contract.LogFatal("Error binding sweep flags", err)
	}

	// Bind all flags of timelineCmd to Viper
	timelineCmd.Flags().String("lens", string(schema.ExecutiveLens), "Lens: executive or product or engineering or design")
	timelineCmd.Flags().Bool("play", false, "Step through the events one per interval")
	timelineCmd.Flags().String("interval", contract.DefaultPlayInterval, "Time each event stays on screen during --play")
	if err := viper.BindPFlags(timelineCmd.Flags()); err != nil {
		contract.LogFatal("Error binding timeline flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
