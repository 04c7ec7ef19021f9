package cmd

import (
	"github.com/huangsam/sweeplens/core"
	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/internal/runstore"
	"github.com/spf13/cobra"
)

// correlationsCmd breaks down issue rates per hyperparameter.
var correlationsCmd = &cobra.Command{
	Use:   "correlations [results-csv]",
	Short: "Show which hyperparameter choices correlate with issues.",
	Long: `Run the detectors, then break down issue rates per hyperparameter value.

Numeric hyperparameters are bucketed into up to five quantile intervals;
categorical hyperparameters are grouped by exact value. Groups are sorted
by issue rate so the riskiest settings surface first.

Use this to answer questions like:
- Do high learning rates blow up training?
- Does one optimizer fail more often than the others?
- Are deep models the ones that overfit?

Examples:
  # Correlate every hyperparameter column
  sweeplens correlations runs/sweep_042.csv

  # Restrict the breakdown to specific columns
  sweeplens correlations --params lr,optimizer

  # Machine-readable output for dashboards
  sweeplens correlations --output json --output-file corr.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSweepCorrelations(rootCtx, cfg, tableLoader, runstore.Manager); err != nil {
			contract.LogFatal("Cannot run correlation analysis", err)
		}
	},
}
