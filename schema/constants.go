package schema

// Custom string types for type safety.
type (
	// IssueType represents the kind of anomaly detected for a trial.
	IssueType string

	// Severity represents how serious a detected issue is.
	Severity string

	// CorrelationKind represents how a hyperparameter column was grouped.
	CorrelationKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All issue types supported.
const (
	NaNOrInfMetric     IssueType = "nan_or_inf_metric"
	FailedTrial        IssueType = "failed_trial"
	OverfittingSuspect IssueType = "overfitting_suspect"
	ShortRun           IssueType = "short_run"
)

// All severities supported.
const (
	LowSeverity    Severity = "low"
	MediumSeverity Severity = "medium"
	HighSeverity   Severity = "high"
)

// All correlation kinds supported.
const (
	NumericCorrelation     CorrelationKind = "numeric"
	CategoricalCorrelation CorrelationKind = "categorical"
)

// All output modes supported.
const (
	TableOut OutputMode = "table" // default
	CSVOut   OutputMode = "csv"
	JSONOut  OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Bookkeeping column names. Every column of a sweep table that is not
// listed here is treated as a hyperparameter column.
const (
	TrialIDColumn    = "trial_id"
	StatusColumn     = "status"
	TrainLossColumn  = "train_loss"
	ValLossColumn    = "val_loss"
	TrainAccColumn   = "train_acc"
	ValAccColumn     = "val_acc"
	EpochsColumn     = "epochs"
	RuntimeSecColumn = "runtime_sec"
)

// AllIssueTypes returns a list of all supported issue types in detector order.
var AllIssueTypes = []IssueType{NaNOrInfMetric, FailedTrial, OverfittingSuspect, ShortRun}

// ValidIssueTypes lists all valid issue types.
var ValidIssueTypes = map[IssueType]struct{}{
	NaNOrInfMetric:     {},
	FailedTrial:        {},
	OverfittingSuspect: {},
	ShortRun:           {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TableOut: {},
	CSVOut:   {},
	JSONOut:  {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// BookkeepingColumns lists the reserved columns shared between ingestion
// and the detectors. Treat it as immutable.
var BookkeepingColumns = map[string]struct{}{
	TrialIDColumn:    {},
	StatusColumn:     {},
	TrainLossColumn:  {},
	ValLossColumn:    {},
	TrainAccColumn:   {},
	ValAccColumn:     {},
	EpochsColumn:     {},
	RuntimeSecColumn: {},
}

// DefaultMetricColumns are the metric columns scanned for NaN/Inf values
// when no explicit list is given, in scan order.
var DefaultMetricColumns = []string{TrainLossColumn, ValLossColumn, TrainAccColumn, ValAccColumn}

// GetSeverity returns the fixed severity for a given issue type.
func GetSeverity(t IssueType) Severity {
	switch t {
	case NaNOrInfMetric, FailedTrial:
		return HighSeverity
	case OverfittingSuspect, ShortRun:
		return MediumSeverity
	default:
		return LowSeverity
	}
}
