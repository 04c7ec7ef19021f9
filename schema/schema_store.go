package schema

import "time"

// Run statuses recorded in the history store.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// RunRecord is one analysis run as stored in the history store.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	CSVPath       string     `json:"csv_path"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMs *int32     `json:"run_duration_ms,omitempty"`
	Status        string     `json:"status"`
	NumTrials     int32      `json:"num_trials"`
	NumIssues     int32      `json:"num_issues"`
	NumNaNOrInf   int32      `json:"num_nan_or_inf"`
	NumFailed     int32      `json:"num_failed"`
	NumOverfit    int32      `json:"num_overfit"`
	NumShortRun   int32      `json:"num_short_run"`
}

// HistoryStatus summarizes the state of the run history store.
type HistoryStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TotalIssues   int64
	TableSizes    map[string]int64
}
