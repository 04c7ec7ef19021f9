// Package cmd defines the command-line interface for sweeplens.
package cmd

import (
	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(correlationsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyRunsCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("results-csv", contract.DefaultResultsCSV, "Path to the sweep results CSV (overridden by positional argument)")
	rootCmd.PersistentFlags().String("metric-cols", "", "Comma-separated metric columns to scan for NaN/Inf values")
	rootCmd.PersistentFlags().String("completed-status", contract.DefaultCompletedStatus, "Status value that marks a successful trial")
	rootCmd.PersistentFlags().String("train-col", schema.TrainLossColumn, "Training loss column for the overfitting check")
	rootCmd.PersistentFlags().String("val-col", schema.ValLossColumn, "Validation loss column for the overfitting check")
	rootCmd.PersistentFlags().Float64("overfit-ratio", contract.DefaultOverfitRatio, "Validation/train loss ratio at which a trial is flagged as overfitting")
	rootCmd.PersistentFlags().Float64("min-epochs", contract.DefaultMinEpochs, "Minimum epochs before the overfitting check applies")
	rootCmd.PersistentFlags().String("epoch-col", schema.EpochsColumn, "Epoch count column for the short-run check")
	rootCmd.PersistentFlags().String("runtime-col", schema.RuntimeSecColumn, "Runtime column for the short-run check")
	rootCmd.PersistentFlags().Float64("short-run-quantile", contract.DefaultShortRunQuantile, "Quantile of epochs/runtime below which a trial is a short run")
	rootCmd.PersistentFlags().StringP("params", "p", "", "Comma-separated hyperparameter columns to correlate (default: every non-bookkeeping column)")
	rootCmd.PersistentFlags().String("output", string(schema.TableOut), "Output format: table or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
