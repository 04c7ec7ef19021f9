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

// WriteSummaryResults outputs the structured summary, dispatching based on
// the output format configured. JSON preserves the full document; table and
// CSV modes show the aggregate counts.
func WriteSummaryResults(report *schema.SweepReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, report.Summary)
		}, "Wrote CSV")
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(report, duration, w)
		}, "Wrote table")
	default:
		// The summary is a JSON document first and foremost
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report.Summary)
		}, "Wrote JSON")
	}
}

// writeSummaryTable generates and writes the human-readable count tables.
func writeSummaryTable(report *schema.SweepReport, duration time.Duration, writer io.Writer) error {
	summary := report.Summary

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{
		{"Trials analyzed", strconv.Itoa(report.NumTrials)},
		{"Issues found", strconv.Itoa(summary.Meta.NumIssues)},
		{"Trials with issues", strconv.Itoa(summary.Meta.NumTrialsWithIssue)},
	}
	for _, issueType := range schema.AllIssueTypes {
		if n, ok := summary.Meta.CountsByType[issueType]; ok {
			data = append(data, []string{string(issueType), strconv.Itoa(n)})
		}
	}
	for _, sev := range []schema.Severity{schema.HighSeverity, schema.MediumSeverity, schema.LowSeverity} {
		if n, ok := summary.Meta.SeverityCounts[sev]; ok {
			label := fmt.Sprintf("%s severity", contract.GetColorLabel(sev))
			data = append(data, []string{label, strconv.Itoa(n)})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analyzed %s in %v\n", report.CSVPath, duration); err != nil {
		return err
	}
	return nil
}

// writeSummaryCSV writes the aggregate counts as metric,value records.
func writeSummaryCSV(w io.Writer, summary *schema.StructuredSummary) error {
	header := []string{"metric", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		records := [][]string{
			{"num_issues", strconv.Itoa(summary.Meta.NumIssues)},
			{"num_trials_with_issue", strconv.Itoa(summary.Meta.NumTrialsWithIssue)},
		}
		for _, issueType := range schema.AllIssueTypes {
			if n, ok := summary.Meta.CountsByType[issueType]; ok {
				records = append(records, []string{string(issueType), strconv.Itoa(n)})
			}
		}
		for _, sev := range []schema.Severity{schema.HighSeverity, schema.MediumSeverity, schema.LowSeverity} {
			if n, ok := summary.Meta.SeverityCounts[sev]; ok {
				records = append(records, []string{string(sev) + "_severity", strconv.Itoa(n)})
			}
		}
		for _, rec := range records {
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
