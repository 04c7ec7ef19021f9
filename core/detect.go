package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"
)

// ratioEpsilon floors the train loss so a near-zero denominator never
// produces a non-finite ratio.
const ratioEpsilon = 1e-8

// OverfitOptions configures the overfitting detector. Zero values fall
// back to the documented defaults.
type OverfitOptions struct {
	TrainCol       string  // default train_loss
	ValCol         string  // default val_loss
	ThresholdRatio float64 // default 1.5
	MinEpochs      float64 // default 5
}

// ShortRunOptions configures the short run detector. Zero values fall
// back to the documented defaults.
type ShortRunOptions struct {
	EpochCol   string  // default epochs
	RuntimeCol string  // default runtime_sec
	Quantile   float64 // default 0.1
}

func (o OverfitOptions) withDefaults() OverfitOptions {
	if o.TrainCol == "" {
		o.TrainCol = schema.TrainLossColumn
	}
	if o.ValCol == "" {
		o.ValCol = schema.ValLossColumn
	}
	if o.ThresholdRatio == 0 {
		o.ThresholdRatio = contract.DefaultOverfitRatio
	}
	if o.MinEpochs == 0 {
		o.MinEpochs = contract.DefaultMinEpochs
	}
	return o
}

func (o ShortRunOptions) withDefaults() ShortRunOptions {
	if o.EpochCol == "" {
		o.EpochCol = schema.EpochsColumn
	}
	if o.RuntimeCol == "" {
		o.RuntimeCol = schema.RuntimeSecColumn
	}
	if o.Quantile == 0 {
		o.Quantile = contract.DefaultShortRunQuantile
	}
	return o
}

// DetectNaNInfMetrics flags trials whose metric values are missing or
// non-finite. metricCols defaults to the bookkeeping metric columns present
// in the table. Each trial yields at most one issue: the scan stops at the
// first offending column.
func DetectNaNInfMetrics(tbl *schema.Table, metricCols []string) []schema.TrialIssue {
	candidates := metricCols
	if len(candidates) == 0 {
		candidates = schema.DefaultMetricColumns
	}

	// Columns absent from the table are never an error
	var cols []string
	for _, c := range candidates {
		if tbl.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return nil
	}

	var issues []schema.TrialIssue
	for _, row := range tbl.Rows {
		for _, col := range cols {
			val := row[col]
			flagged := schema.IsMissing(val)
			if !flagged {
				if f, ok := schema.AsFloat(val); ok && !schema.IsFinite(f) {
					flagged = true
				}
			}
			if flagged {
				details := fmt.Sprintf("%s is %s", col, schema.FormatValue(val))
				issues = append(issues, schema.NewTrialIssue(row, schema.NaNOrInfMetric, details))
				break
			}
		}
	}
	return issues
}

// DetectFailedTrials flags trials whose status differs from the completed
// status (case-insensitive). Blank statuses carry no information and are
// never flagged. completedStatus defaults to "completed".
func DetectFailedTrials(tbl *schema.Table, completedStatus string) []schema.TrialIssue {
	if !tbl.HasColumn(schema.StatusColumn) {
		return nil
	}
	if completedStatus == "" {
		completedStatus = contract.DefaultCompletedStatus
	}
	want := strings.ToLower(completedStatus)

	var issues []schema.TrialIssue
	for _, row := range tbl.Rows {
		raw := row[schema.StatusColumn]
		if schema.IsMissing(raw) {
			continue
		}
		status := strings.ToLower(strings.TrimSpace(schema.FormatValue(raw)))
		if status == "" || status == want {
			continue
		}
		details := fmt.Sprintf("status='%s'", schema.FormatValue(raw))
		issues = append(issues, schema.NewTrialIssue(row, schema.FailedTrial, details))
	}
	return issues
}

// DetectOverfitting flags trials whose validation loss dwarfs the train
// loss. Trials with fewer than MinEpochs epochs are too short to judge
// and are skipped.
func DetectOverfitting(tbl *schema.Table, opts OverfitOptions) []schema.TrialIssue {
	opts = opts.withDefaults()
	if !tbl.HasColumn(opts.TrainCol) || !tbl.HasColumn(opts.ValCol) {
		return nil
	}
	hasEpochs := tbl.HasColumn(schema.EpochsColumn)

	var issues []schema.TrialIssue
	for _, row := range tbl.Rows {
		train, trainOK := schema.AsFloat(row[opts.TrainCol])
		val, valOK := schema.AsFloat(row[opts.ValCol])
		if !trainOK || !valOK {
			continue
		}
		if hasEpochs {
			if epochs, ok := schema.AsFloat(row[schema.EpochsColumn]); ok && epochs < opts.MinEpochs {
				continue
			}
		}
		ratio := val / math.Max(train, ratioEpsilon)
		if ratio >= opts.ThresholdRatio {
			details := fmt.Sprintf("%s/%s ratio = %.2f", opts.ValCol, opts.TrainCol, ratio)
			issues = append(issues, schema.NewTrialIssue(row, schema.OverfittingSuspect, details))
		}
	}
	return issues
}

// DetectShortRuns flags trials at or below the configured quantile of
// epochs or runtime. Thresholds are computed once over the whole table and
// the comparison is inclusive, so trials exactly at the boundary are
// flagged. The details list every condition that triggered.
func DetectShortRuns(tbl *schema.Table, opts ShortRunOptions) []schema.TrialIssue {
	opts = opts.withDefaults()
	hasEpoch := tbl.HasColumn(opts.EpochCol)
	hasRuntime := tbl.HasColumn(opts.RuntimeCol)
	if !hasEpoch && !hasRuntime {
		return nil
	}

	var epochThr, runtimeThr float64
	var epochOK, runtimeOK bool
	if hasEpoch {
		epochThr, epochOK = columnQuantile(tbl, opts.EpochCol, opts.Quantile)
	}
	if hasRuntime {
		runtimeThr, runtimeOK = columnQuantile(tbl, opts.RuntimeCol, opts.Quantile)
	}

	var issues []schema.TrialIssue
	for _, row := range tbl.Rows {
		var conds []string
		if epochOK {
			if v, ok := schema.AsFloat(row[opts.EpochCol]); ok && !math.IsNaN(v) && v <= epochThr {
				conds = append(conds, fmt.Sprintf("%s=%s (<= %.1f)", opts.EpochCol, schema.FormatValue(row[opts.EpochCol]), epochThr))
			}
		}
		if runtimeOK {
			if v, ok := schema.AsFloat(row[opts.RuntimeCol]); ok && !math.IsNaN(v) && v <= runtimeThr {
				conds = append(conds, fmt.Sprintf("%s=%s (<= %.1f)", opts.RuntimeCol, schema.FormatValue(row[opts.RuntimeCol]), runtimeThr))
			}
		}
		if len(conds) > 0 {
			issues = append(issues, schema.NewTrialIssue(row, schema.ShortRun, strings.Join(conds, "; ")))
		}
	}
	return issues
}

// columnQuantile computes the value at quantile q over the non-missing
// numeric values of a column. The second return is false when no such
// value exists.
func columnQuantile(tbl *schema.Table, col string, q float64) (float64, bool) {
	var values []float64
	for _, row := range tbl.Rows {
		if v, ok := schema.AsFloat(row[col]); ok && !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	return quantile(values, q), true
}
