package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/internal/runstore"
	"github.com/huangsam/sweeplens/internal/tableio"
	"github.com/huangsam/sweeplens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// tableLoader reads trial tables from disk.
var tableLoader contract.TableLoader = tableio.NewCSVLoader()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "sweeplens",
	Short:              "Analyze hyperparameter sweep results to find problematic trials.",
	Long:               `Sweeplens scans sweep results CSVs for NaN metrics, failed trials, overfitting, and short runs, then correlates issues with hyperparameter choices.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".sweeplens") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("SWEEPLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("results-csv", contract.DefaultResultsCSV)
	viper.SetDefault("completed-status", contract.DefaultCompletedStatus)
	viper.SetDefault("overfit-ratio", contract.DefaultOverfitRatio)
	viper.SetDefault("min-epochs", contract.DefaultMinEpochs)
	viper.SetDefault("short-run-quantile", contract.DefaultShortRunQuantile)
	viper.SetDefault("output", schema.TableOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("history-backend", schema.SQLiteBackend)
	viper.SetDefault("history-db-connect", "")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.CSVPathStr = args[0]
	} else {
		input.CSVPathStr = ""
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Initialize run history with validated config
	if err := runstore.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}

	// 6. Apply color preference globally
	color.NoColor = !cfg.UseColors

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".sweeplens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
