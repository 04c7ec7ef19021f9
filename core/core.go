// Package core implements the sweep analysis engine: issue detection,
// hyperparameter correlation, and summary building.
package core

import (
	"context"
	"time"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/internal/outwriter"
	"github.com/huangsam/sweeplens/schema"
)

// RunDetectors runs every detector against the table and concatenates
// their issues. The detector order is fixed, so issue order is stable
// across runs of the same table.
func RunDetectors(tbl *schema.Table, cfg *contract.Config) []schema.TrialIssue {
	var issues []schema.TrialIssue
	issues = append(issues, DetectNaNInfMetrics(tbl, cfg.MetricCols)...)
	issues = append(issues, DetectFailedTrials(tbl, cfg.CompletedStatus)...)
	issues = append(issues, DetectOverfitting(tbl, OverfitOptions{
		TrainCol:       cfg.TrainLossCol,
		ValCol:         cfg.ValLossCol,
		ThresholdRatio: cfg.OverfitRatio,
		MinEpochs:      cfg.MinEpochs,
	})...)
	issues = append(issues, DetectShortRuns(tbl, ShortRunOptions{
		EpochCol:   cfg.EpochCol,
		RuntimeCol: cfg.RuntimeCol,
		Quantile:   cfg.ShortRunQuantile,
	})...)
	return issues
}

// GetSweepReport loads the trial table and runs the full analysis
// pipeline: detection, correlation, and summary building.
func GetSweepReport(ctx context.Context, cfg *contract.Config, loader contract.TableLoader) (*schema.SweepReport, error) {
	tbl, err := loader.Load(ctx, cfg.CSVPath)
	if err != nil {
		return nil, err
	}

	issues := RunDetectors(tbl, cfg)
	correlations := AnalyzeParamCorrelations(tbl, issues, cfg.ParamCols)
	summary := BuildStructuredSummary(issues, correlations)

	return &schema.SweepReport{
		CSVPath:      cfg.CSVPath,
		NumTrials:    len(tbl.Rows),
		Issues:       issues,
		Correlations: correlations,
		Summary:      summary,
	}, nil
}

// runTrackedReport wraps GetSweepReport with run history tracking.
// Tracking failures are logged as warnings and never fail the analysis.
func runTrackedReport(ctx context.Context, cfg *contract.Config, loader contract.TableLoader, mgr contract.HistoryManager) (*schema.SweepReport, error) {
	var store contract.HistoryStore
	if mgr != nil {
		store = mgr.GetHistoryStore()
	}

	var runID int64
	if store != nil {
		var err error
		runID, err = store.BeginRun(time.Now(), cfg.CSVPath)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	report, err := GetSweepReport(ctx, cfg, loader)

	if store != nil && runID > 0 {
		status := schema.RunStatusCompleted
		numTrials := 0
		var summary *schema.StructuredSummary
		if err != nil {
			status = schema.RunStatusFailed
		} else {
			numTrials = report.NumTrials
			summary = report.Summary
		}
		if trackErr := store.EndRun(runID, time.Now(), status, numTrials, summary); trackErr != nil {
			contract.LogWarn("Failed to finalize run tracking", trackErr)
		}
	}

	return report, err
}

// ExecuteSweepIssues runs the detectors and writes the issue list.
func ExecuteSweepIssues(ctx context.Context, cfg *contract.Config, loader contract.TableLoader, mgr contract.HistoryManager) error {
	start := time.Now()
	report, err := runTrackedReport(ctx, cfg, loader, mgr)
	if err != nil {
		return err
	}
	writer := outwriter.NewOutWriter()
	return writer.WriteIssues(report, cfg, time.Since(start))
}

// ExecuteSweepCorrelations runs the full pipeline and writes the
// per-hyperparameter correlation breakdown.
func ExecuteSweepCorrelations(ctx context.Context, cfg *contract.Config, loader contract.TableLoader, mgr contract.HistoryManager) error {
	start := time.Now()
	report, err := runTrackedReport(ctx, cfg, loader, mgr)
	if err != nil {
		return err
	}
	writer := outwriter.NewOutWriter()
	return writer.WriteCorrelations(report, cfg, time.Since(start))
}

// ExecuteSweepSummary runs the full pipeline and writes the structured
// summary document.
func ExecuteSweepSummary(ctx context.Context, cfg *contract.Config, loader contract.TableLoader, mgr contract.HistoryManager) error {
	start := time.Now()
	report, err := runTrackedReport(ctx, cfg, loader, mgr)
	if err != nil {
		return err
	}
	writer := outwriter.NewOutWriter()
	return writer.WriteSummary(report, cfg, time.Since(start))
}
