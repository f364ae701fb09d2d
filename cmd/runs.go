package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/internal/iocache"
	"github.com/huangsam/tradeoff/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsBackendConfig reads and validates the run history backend settings.
func runsBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := viper.GetString("run-backend")
	if backendStr == "" {
		backendStr = string(schema.SQLiteBackend)
	}
	backend := schema.DatabaseBackend(backendStr)
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	connStr := viper.GetString("run-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// runsSetup loads minimal configuration needed for run history operations.
// This is used by commands that need the run store without full shared setup.
func runsSetup() error {
	backend, connStr, err := runsBackendConfig()
	if err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func runsMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := runsBackendConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunDBFilePath()
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	return nil
}

// runsCmd focused on run history management.
//
// Note: runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by simulation commands.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage recorded simulation runs and exports",
	Long: `Manage the history of simulation runs recorded with --record.

Each recorded run stores:
- Run metadata (session id, command, timestamps, configuration)
- Every constraint snapshot of the run with the metrics it produced

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check history status
  tradeoff runs status

  # Export for analysis in pandas/DuckDB
  tradeoff runs export --output-file runs`,
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all recorded runs and snapshots.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the run tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Clear SQLite history (default)
  tradeoff runs clear

  # Clear MySQL history (set connection string via env variable)
  TRADEOFF_RUN_BACKEND=mysql TRADEOFF_RUN_DB_CONNECT="..." tradeoff runs clear`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		// runsMigrateSetup resolves an empty SQLite connection string to the default file.
		if err := iocache.ClearRuns(cfg.RunBackend, cfg.RunDBConnect, cfg.RunDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsStatusCmd shows run history status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show detailed information about the recorded run history.

Displays:
- Backend type and connection status
- Total number of runs and snapshots
- Last and oldest run timestamps
- Database table sizes

Examples:
  tradeoff runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		iocache.PrintRunStatus(os.Stdout, status)
	},
}

// runsExportCmd exports the run history to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet format.

Exports two datasets:
- <output-file>.runs.parquet - metadata about each run
- <output-file>.run_metrics.parquet - every snapshot with its metrics

Requires: --output-file parameter

Examples:
  # Export all data
  tradeoff runs export --output-file tradeoff

  # Use with DuckDB for analysis
  duckdb -c "SELECT scenario_id, avg(conversion) FROM read_parquet('tradeoff.run_metrics.parquet') GROUP BY 1"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteRunsExport(os.Stdout, iocache.Manager.GetRunStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.
MySQL connection strings need multiStatements=true.

Examples:
  # Migrate to latest version (default)
  tradeoff runs migrate

  # Rollback to initial state
  tradeoff runs migrate --target-version 0`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateRuns(os.Stdout, cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
