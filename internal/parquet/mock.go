package parquet

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/sweeplens/schema"
)

// formatParams renders a hyperparameter snapshot as "k=v" pairs in key
// order so the exported column is deterministic.
func formatParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, schema.FormatValue(params[k])))
	}
	return strings.Join(parts, ", ")
}

// MockFetchRuns returns sample run records for demos and tests.
func MockFetchRuns() []Run {
	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	durationMs := int32(2000)

	return []Run{
		{
			RunID:         1,
			CSVPath:       "results.csv",
			StartTime:     start,
			EndTime:       &end,
			RunDurationMs: &durationMs,
			Status:        schema.RunStatusCompleted,
			NumTrials:     50,
			NumIssues:     7,
			NumNaNOrInf:   1,
			NumFailed:     2,
			NumOverfit:    1,
			NumShortRun:   3,
		},
		{
			RunID:     2,
			CSVPath:   "sweep_v2.csv",
			StartTime: start.Add(time.Hour),
			Status:    schema.RunStatusRunning,
			NumTrials: 0,
		},
	}
}

// MockFetchIssues returns sample issue records for demos and tests.
func MockFetchIssues() []Issue {
	trialID := "17"
	return []Issue{
		{
			TrialID:     &trialID,
			IssueType:   string(schema.NaNOrInfMetric),
			Severity:    string(schema.HighSeverity),
			Details:     "val_loss is NaN",
			Hyperparams: "lr=0.1, optimizer=sgd",
		},
		{
			IssueType:   string(schema.ShortRun),
			Severity:    string(schema.MediumSeverity),
			Details:     "epochs=1 (<= 2.0)",
			Hyperparams: "lr=0.001, optimizer=adam",
		},
	}
}
