package cmd

import (
	"fmt"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/internal/outwriter"
	"github.com/huangsam/sweeplens/internal/runstore"
	"github.com/huangsam/sweeplens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need the history store without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as the SQLite default
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := runstore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by analysis commands. This avoids CSV validation
// and detector config processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage historical run tracking and exports",
	Long: `Manage the run history store used for trend tracking and reporting.

When enabled, Sweeplens records every analysis run, storing:
- Run metadata (CSV path, timestamps, duration, status)
- Trial counts and issue counts by type

This enables longitudinal analysis, regression detection across sweeps,
and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check run history status
  sweeplens history status

  # Export for analysis in pandas/DuckDB
  sweeplens history export --output-file sweep-history.parquet`,
}

// historyStatusCmd shows run history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show detailed information about the run history store.

Displays:
- Backend type and connection status
- Total number of recorded runs
- Last and oldest run timestamps
- Total issues recorded across all runs
- Database table sizes

Examples:
  # Check run history status
  sweeplens history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := runstore.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", fmt.Errorf("run history is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		runstore.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet format for use with analytics tools.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all recorded runs
  sweeplens history export --output-file sweep-history.parquet

  # Use with DuckDB for analysis
  sweeplens history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded run history",
	Long: `Delete all stored run records from the configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the runs table

Examples:
  # Export before clearing
  sweeplens history export --output-file backup.parquet
  sweeplens history clear

  # Clear a MySQL-backed history (set connection string via env variable)
  SWEEPLENS_HISTORY_BACKEND=mysql SWEEPLENS_HISTORY_DB_CONNECT="..." sweeplens history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyRunsCmd lists every recorded run.
var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analysis runs",
	Long: `List every run recorded in the history store, newest configuration last.

Each run shows its CSV path, start time, duration, status, and trial
and issue counts. Use --output csv or --output json for the full record
including per-issue-type counts.

Examples:
  # Show recorded runs as a table
  sweeplens history runs

  # Full records for scripting
  sweeplens history runs --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := runstore.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to list runs", fmt.Errorf("run history is not configured"))
		}
		runs, err := store.GetAllRuns()
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		cfg.Output = schema.OutputMode(viper.GetString("output"))
		writer := outwriter.NewOutWriter()
		if err := writer.WriteRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to write runs", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  sweeplens history migrate

  # Migrate to specific version
  sweeplens history migrate --target-version 1

  # Rollback to initial state
  sweeplens history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
