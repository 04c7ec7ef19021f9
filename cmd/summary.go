package cmd

import (
	"github.com/huangsam/sweeplens/core"
	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/internal/runstore"
	"github.com/huangsam/sweeplens/schema"
	"github.com/spf13/cobra"
)

// summaryCmd emits the full structured summary document.
var summaryCmd = &cobra.Command{
	Use:   "summary [results-csv]",
	Short: "Produce a structured summary of the whole sweep.",
	Long: `Run the full analysis pipeline and emit a structured summary document.

The summary contains:
- meta counts (total issues, affected trials, counts by type and severity)
- up to ten example issues per issue type
- the hyperparameter correlation breakdown

The default output is JSON, which makes this command the natural feed for
automation, dashboards, and LLM-based sweep triage.

Examples:
  # Print the summary JSON for the default results.csv
  sweeplens summary

  # Write the summary to a file for a report pipeline
  sweeplens summary runs/sweep_042.csv --output-file summary.json

  # Aggregate counts as a terminal table instead
  sweeplens summary --output table`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		// Summary is a JSON document first; only honor table mode when the
		// user asked for it explicitly.
		if cfg.Output == schema.TableOut && !cmd.Flags().Changed("output") {
			cfg.Output = schema.JSONOut
		}
		if err := core.ExecuteSweepSummary(rootCtx, cfg, tableLoader, runstore.Manager); err != nil {
			contract.LogFatal("Cannot run sweep summary", err)
		}
	},
}
