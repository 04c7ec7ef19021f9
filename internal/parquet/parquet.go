// Package parquet provides data structures and functions for exporting
// sweep analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/sweeplens/schema"
)

// Run represents a single recorded analysis run with metadata.
// This struct maps to the sweeplens_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// CSVPath is the results file that was analyzed
	CSVPath string `parquet:"csv_path,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// Status is the final run state: running, completed, or failed
	Status string `parquet:"status,snappy"`

	// NumTrials is the number of trials in the analyzed table
	NumTrials int32 `parquet:"num_trials,snappy"`

	// NumIssues is the total issue count for this run
	NumIssues int32 `parquet:"num_issues,snappy"`

	// Per-type issue counts
	NumNaNOrInf int32 `parquet:"num_nan_or_inf,snappy"`
	NumFailed   int32 `parquet:"num_failed,snappy"`
	NumOverfit  int32 `parquet:"num_overfit,snappy"`
	NumShortRun int32 `parquet:"num_short_run,snappy"`
}

// Issue represents a single detected trial issue in flat, columnar form.
type Issue struct {
	// TrialID is the flagged trial rendered as text (nullable when the
	// source table has no trial_id column)
	TrialID *string `parquet:"trial_id,optional,snappy"`

	// IssueType is the closed anomaly kind
	IssueType string `parquet:"issue_type,snappy"`

	// Severity is the fixed severity for the issue type
	Severity string `parquet:"severity,snappy"`

	// Details is the deterministic explanation string
	Details string `parquet:"details,snappy"`

	// Hyperparams is the hyperparameter snapshot rendered as "k=v" pairs
	Hyperparams string `parquet:"hyperparams,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteIssuesParquet writes a slice of Issue structs to a Parquet file.
func WriteIssuesParquet(data []Issue, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Issue struct tags
	writer := parquet.NewGenericWriter[Issue](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts store records to their Parquet representation.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	runs := make([]Run, len(records))
	for i, r := range records {
		runs[i] = Run{
			RunID:         r.RunID,
			CSVPath:       r.CSVPath,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			Status:        r.Status,
			NumTrials:     r.NumTrials,
			NumIssues:     r.NumIssues,
			NumNaNOrInf:   r.NumNaNOrInf,
			NumFailed:     r.NumFailed,
			NumOverfit:    r.NumOverfit,
			NumShortRun:   r.NumShortRun,
		}
	}
	return runs
}

// ConvertIssues converts detected issues to their Parquet representation.
// Hyperparameter snapshots are flattened with formatParams since Parquet
// columns need a fixed shape.
func ConvertIssues(issues []schema.TrialIssue) []Issue {
	out := make([]Issue, len(issues))
	for i, issue := range issues {
		var trialID *string
		if issue.TrialID != nil {
			s := schema.FormatValue(issue.TrialID)
			trialID = &s
		}
		out[i] = Issue{
			TrialID:     trialID,
			IssueType:   string(issue.IssueType),
			Severity:    string(issue.Severity),
			Details:     issue.Details,
			Hyperparams: formatParams(issue.Hyperparams),
		}
	}
	return out
}
