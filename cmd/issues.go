package cmd

import (
	"github.com/huangsam/sweeplens/core"
	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/internal/runstore"
	"github.com/spf13/cobra"
)

// issuesCmd lists every per-trial issue found in the sweep.
var issuesCmd = &cobra.Command{
	Use:   "issues [results-csv]",
	Short: "List problematic trials found in a sweep results CSV.",
	Long: `Run every detector against the sweep results and list each flagged trial.

Detectors:
- NaN/Inf metrics - trials whose metric columns hold NaN, Inf, or missing values
- Failed trials   - trials whose status column does not match the completed status
- Overfitting     - trials whose validation loss far exceeds training loss
- Short runs      - trials in the bottom quantile of epochs or runtime

Each issue carries the trial ID, a severity label, human-readable details,
and the trial's hyperparameter values for quick triage.

Examples:
  # Scan the default results.csv
  sweeplens issues

  # Scan a specific sweep and tighten the overfitting threshold
  sweeplens issues runs/sweep_042.csv --overfit-ratio 1.2

  # Only flag trials that did not report status "done"
  sweeplens issues --completed-status done

  # Export findings to CSV for tracking
  sweeplens issues --output csv --output-file issues.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSweepIssues(rootCtx, cfg, tableLoader, runstore.Manager); err != nil {
			contract.LogFatal("Cannot run issue detection", err)
		}
	},
}
