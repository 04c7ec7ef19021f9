package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/sweeplens/schema"
)

// Default values for configuration.
const (
	DefaultResultsCSV       = "results.csv"
	DefaultCompletedStatus  = "completed"
	DefaultOverfitRatio     = 1.5
	DefaultMinEpochs        = 5.0
	DefaultShortRunQuantile = 0.1
)

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	CSVPath string

	// Detector settings
	MetricCols       []string // empty = default metric columns present in the table
	CompletedStatus  string
	TrainLossCol     string
	ValLossCol       string
	OverfitRatio     float64
	MinEpochs        float64
	EpochCol         string
	RuntimeCol       string
	ShortRunQuantile float64

	// ParamCols restricts the correlation analyzer to explicit columns.
	// Empty means every non-bookkeeping column.
	ParamCols []string

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	CSVPathStr string

	ResultsCSV       string  `mapstructure:"results-csv"`
	MetricCols       string  `mapstructure:"metric-cols"`
	CompletedStatus  string  `mapstructure:"completed-status"`
	TrainCol         string  `mapstructure:"train-col"`
	ValCol           string  `mapstructure:"val-col"`
	OverfitRatio     float64 `mapstructure:"overfit-ratio"`
	MinEpochs        float64 `mapstructure:"min-epochs"`
	EpochCol         string  `mapstructure:"epoch-col"`
	RuntimeCol       string  `mapstructure:"runtime-col"`
	ShortRunQuantile float64 `mapstructure:"short-run-quantile"`
	Params           string  `mapstructure:"params"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.MetricCols != nil {
		clone.MetricCols = make([]string, len(c.MetricCols))
		copy(clone.MetricCols, c.MetricCols)
	}
	if c.ParamCols != nil {
		clone.ParamCols = make([]string, len(c.ParamCols))
		copy(clone.ParamCols, c.ParamCols)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateDetectorInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	resolveCSVPath(cfg, input)
	return nil
}

// validateSimpleInputs processes and validates output and display fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be table, csv, json", input.Output)
	}

	return nil
}

// validateDetectorInputs processes and validates all detector knobs.
func validateDetectorInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.MetricCols = ParseColumnList(input.MetricCols)
	cfg.ParamCols = ParseColumnList(input.Params)

	cfg.CompletedStatus = strings.TrimSpace(input.CompletedStatus)
	if cfg.CompletedStatus == "" {
		cfg.CompletedStatus = DefaultCompletedStatus
	}

	cfg.TrainLossCol = strings.TrimSpace(input.TrainCol)
	if cfg.TrainLossCol == "" {
		cfg.TrainLossCol = schema.TrainLossColumn
	}
	cfg.ValLossCol = strings.TrimSpace(input.ValCol)
	if cfg.ValLossCol == "" {
		cfg.ValLossCol = schema.ValLossColumn
	}
	cfg.EpochCol = strings.TrimSpace(input.EpochCol)
	if cfg.EpochCol == "" {
		cfg.EpochCol = schema.EpochsColumn
	}
	cfg.RuntimeCol = strings.TrimSpace(input.RuntimeCol)
	if cfg.RuntimeCol == "" {
		cfg.RuntimeCol = schema.RuntimeSecColumn
	}

	if input.OverfitRatio <= 0 {
		return fmt.Errorf("overfit-ratio must be greater than 0 (received %.2f)", input.OverfitRatio)
	}
	cfg.OverfitRatio = input.OverfitRatio

	if input.MinEpochs < 0 {
		return fmt.Errorf("min-epochs cannot be negative (received %.1f)", input.MinEpochs)
	}
	cfg.MinEpochs = input.MinEpochs

	if input.ShortRunQuantile <= 0 || input.ShortRunQuantile >= 1 {
		return fmt.Errorf("short-run-quantile must be in (0, 1) (received %.2f)", input.ShortRunQuantile)
	}
	cfg.ShortRunQuantile = input.ShortRunQuantile

	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
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

// resolveCSVPath picks the trial table path. A positional argument takes
// precedence over the results-csv setting (SWEEPLENS_RESULTS_CSV).
func resolveCSVPath(cfg *Config, input *ConfigRawInput) {
	path := strings.TrimSpace(input.CSVPathStr)
	if path == "" {
		path = strings.TrimSpace(input.ResultsCSV)
	}
	if path == "" {
		path = DefaultResultsCSV
	}
	cfg.CSVPath = path
}

// ParseColumnList splits a comma-separated column list, dropping blanks.
func ParseColumnList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var cols []string
	for part := range strings.SplitSeq(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cols = append(cols, trimmed)
		}
	}
	return cols
}
