package core

import (
	"math"
	"testing"

	"github.com/huangsam/sweeplens/schema"
	"github.com/stretchr/testify/assert"
)

// makeTable builds a test table with the given columns and rows.
func makeTable(cols []string, rows ...schema.Row) *schema.Table {
	return &schema.Table{Columns: cols, Rows: rows}
}

func TestDetectNaNInfMetrics(t *testing.T) {
	cols := []string{"trial_id", "train_loss", "val_loss", "lr"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "train_loss": 0.5, "val_loss": 0.6, "lr": 0.01},
		schema.Row{"trial_id": int64(2), "train_loss": math.NaN(), "val_loss": 0.6, "lr": 0.01},
		schema.Row{"trial_id": int64(3), "train_loss": 0.5, "val_loss": math.Inf(1), "lr": 0.01},
		schema.Row{"trial_id": int64(4), "train_loss": nil, "val_loss": 0.6, "lr": 0.01},
	)

	issues := DetectNaNInfMetrics(tbl, nil)

	assert.Len(t, issues, 3)
	assert.Equal(t, int64(2), issues[0].TrialID)
	assert.Equal(t, "train_loss is NaN", issues[0].Details)
	assert.Equal(t, int64(3), issues[1].TrialID)
	assert.Equal(t, "val_loss is +Inf", issues[1].Details)
	assert.Equal(t, int64(4), issues[2].TrialID)
	assert.Equal(t, "train_loss is missing", issues[2].Details)
	for _, issue := range issues {
		assert.Equal(t, schema.NaNOrInfMetric, issue.IssueType)
		assert.Equal(t, schema.HighSeverity, issue.Severity)
		assert.NotContains(t, issue.Hyperparams, "train_loss")
		assert.Contains(t, issue.Hyperparams, "lr")
	}
}

func TestDetectNaNInfMetricsOnePerTrial(t *testing.T) {
	cols := []string{"trial_id", "train_loss", "val_loss"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "train_loss": math.NaN(), "val_loss": math.NaN()},
	)

	issues := DetectNaNInfMetrics(tbl, nil)

	assert.Len(t, issues, 1)
	assert.Equal(t, "train_loss is NaN", issues[0].Details)
}

func TestDetectNaNInfMetricsAbsentColumns(t *testing.T) {
	tbl := makeTable([]string{"trial_id", "lr"},
		schema.Row{"trial_id": int64(1), "lr": 0.01},
	)

	assert.Empty(t, DetectNaNInfMetrics(tbl, nil))
	assert.Empty(t, DetectNaNInfMetrics(tbl, []string{"val_loss"}))
}

func TestDetectNaNInfMetricsNonNumericNotFlagged(t *testing.T) {
	tbl := makeTable([]string{"trial_id", "val_loss"},
		schema.Row{"trial_id": int64(1), "val_loss": "oops"},
	)

	assert.Empty(t, DetectNaNInfMetrics(tbl, nil))
}

func TestDetectFailedTrials(t *testing.T) {
	cols := []string{"trial_id", "status"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "status": "completed"},
		schema.Row{"trial_id": int64(2), "status": "FAILED"},
		schema.Row{"trial_id": int64(3), "status": "Completed"},
		schema.Row{"trial_id": int64(4), "status": "crashed"},
		schema.Row{"trial_id": int64(5), "status": nil},
		schema.Row{"trial_id": int64(6), "status": "  "},
	)

	issues := DetectFailedTrials(tbl, "")

	assert.Len(t, issues, 2)
	assert.Equal(t, int64(2), issues[0].TrialID)
	assert.Equal(t, "status='FAILED'", issues[0].Details)
	assert.Equal(t, int64(4), issues[1].TrialID)
	assert.Equal(t, "status='crashed'", issues[1].Details)
}

func TestDetectFailedTrialsCustomStatus(t *testing.T) {
	tbl := makeTable([]string{"trial_id", "status"},
		schema.Row{"trial_id": int64(1), "status": "done"},
		schema.Row{"trial_id": int64(2), "status": "completed"},
	)

	issues := DetectFailedTrials(tbl, "done")

	assert.Len(t, issues, 1)
	assert.Equal(t, int64(2), issues[0].TrialID)
}

func TestDetectFailedTrialsNoStatusColumn(t *testing.T) {
	tbl := makeTable([]string{"trial_id"},
		schema.Row{"trial_id": int64(1)},
	)

	assert.Empty(t, DetectFailedTrials(tbl, ""))
}

func TestDetectOverfitting(t *testing.T) {
	cols := []string{"trial_id", "train_loss", "val_loss", "epochs"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "train_loss": 0.5, "val_loss": 0.6, "epochs": float64(20)},
		schema.Row{"trial_id": int64(2), "train_loss": 0.5, "val_loss": 0.75, "epochs": float64(20)},
		schema.Row{"trial_id": int64(3), "train_loss": 0.4, "val_loss": 0.8, "epochs": float64(3)},
		schema.Row{"trial_id": int64(4), "train_loss": nil, "val_loss": 0.8, "epochs": float64(20)},
	)

	issues := DetectOverfitting(tbl, OverfitOptions{})

	// Trial 2 sits exactly at the threshold ratio, which is inclusive.
	// Trial 3 overfits but ran too few epochs to judge.
	assert.Len(t, issues, 1)
	assert.Equal(t, int64(2), issues[0].TrialID)
	assert.Equal(t, "val_loss/train_loss ratio = 1.50", issues[0].Details)
	assert.Equal(t, schema.MediumSeverity, issues[0].Severity)
}

func TestDetectOverfittingZeroTrainLoss(t *testing.T) {
	tbl := makeTable([]string{"trial_id", "train_loss", "val_loss"},
		schema.Row{"trial_id": int64(1), "train_loss": 0.0, "val_loss": 1.0},
	)

	issues := DetectOverfitting(tbl, OverfitOptions{})

	// The epsilon floor keeps the ratio finite
	assert.Len(t, issues, 1)
	assert.NotContains(t, issues[0].Details, "Inf")
}

func TestDetectOverfittingMissingColumns(t *testing.T) {
	tbl := makeTable([]string{"trial_id", "train_loss"},
		schema.Row{"trial_id": int64(1), "train_loss": 0.4},
	)

	assert.Empty(t, DetectOverfitting(tbl, OverfitOptions{}))
}

func TestDetectShortRunsInclusiveBoundary(t *testing.T) {
	cols := []string{"trial_id", "epochs"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "epochs": float64(1)},
		schema.Row{"trial_id": int64(2), "epochs": float64(2)},
		schema.Row{"trial_id": int64(3), "epochs": float64(3)},
		schema.Row{"trial_id": int64(4), "epochs": float64(4)},
		schema.Row{"trial_id": int64(5), "epochs": float64(5)},
	)

	// Quantile 0.25 over [1..5] lands exactly on 2
	issues := DetectShortRuns(tbl, ShortRunOptions{Quantile: 0.25})

	assert.Len(t, issues, 2)
	assert.Equal(t, int64(1), issues[0].TrialID)
	assert.Equal(t, int64(2), issues[1].TrialID)
	assert.Equal(t, "epochs=2 (<= 2.0)", issues[1].Details)
}

func TestDetectShortRunsBothConditions(t *testing.T) {
	cols := []string{"trial_id", "epochs", "runtime_sec"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "epochs": float64(1), "runtime_sec": float64(10)},
		schema.Row{"trial_id": int64(2), "epochs": float64(20), "runtime_sec": float64(600)},
		schema.Row{"trial_id": int64(3), "epochs": float64(20), "runtime_sec": float64(650)},
		schema.Row{"trial_id": int64(4), "epochs": float64(25), "runtime_sec": float64(700)},
		schema.Row{"trial_id": int64(5), "epochs": float64(30), "runtime_sec": float64(800)},
	)

	issues := DetectShortRuns(tbl, ShortRunOptions{})

	assert.Len(t, issues, 1)
	assert.Equal(t, int64(1), issues[0].TrialID)
	assert.Contains(t, issues[0].Details, "epochs=1")
	assert.Contains(t, issues[0].Details, "; ")
	assert.Contains(t, issues[0].Details, "runtime_sec=10")
}

func TestDetectShortRunsNoColumns(t *testing.T) {
	tbl := makeTable([]string{"trial_id", "lr"},
		schema.Row{"trial_id": int64(1), "lr": 0.01},
	)

	assert.Empty(t, DetectShortRuns(tbl, ShortRunOptions{}))
}
