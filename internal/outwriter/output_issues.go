package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteIssueResults outputs the detected issues, dispatching based on the output format configured.
func WriteIssueResults(report *schema.SweepReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report.Issues)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssueCSV(w, report.Issues)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssueTable(report, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeIssueTable generates and writes the human-readable table.
func writeIssueTable(report *schema.SweepReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"#", "Trial", "Type", "Severity", "Details", "Hyperparams"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxDetails := GetMaxDetailsWidth(cfg)
	var data [][]string
	for i, issue := range report.Issues {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			schema.FormatValue(issue.TrialID),
			string(issue.IssueType),
			contract.GetColorLabel(issue.Severity),
			contract.TruncateDetails(issue.Details, maxDetails),
			formatHyperparams(issue.Hyperparams),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Found %d issue(s) across %d trial(s)\n", len(report.Issues), report.NumTrials); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analyzed %s in %v\n", report.CSVPath, duration); err != nil {
		return err
	}
	return nil
}

// writeIssueCSV writes the issue list in CSV format.
func writeIssueCSV(w io.Writer, issues []schema.TrialIssue) error {
	header := []string{"trial_id", "issue_type", "severity", "details", "hyperparams"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, issue := range issues {
			rec := []string{
				schema.FormatValue(issue.TrialID),
				string(issue.IssueType),
				string(issue.Severity),
				issue.Details,
				formatHyperparams(issue.Hyperparams),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
