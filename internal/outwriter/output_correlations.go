package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCorrelationResults outputs the per-hyperparameter issue rates,
// dispatching based on the output format configured.
func WriteCorrelationResults(report *schema.SweepReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report.Correlations)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCorrelationCSV(w, report.Correlations)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCorrelationTable(report, duration, w)
		}, "Wrote table")
	}
}

// writeCorrelationTable generates and writes the human-readable table.
// Groups are listed per hyperparameter, highest issue rate first.
func writeCorrelationTable(report *schema.SweepReport, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Param", "Kind", "Group", "Rate"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range sortedParamNames(report.Correlations) {
		entry := report.Correlations[name]
		for _, group := range correlationGroups(entry) {
			data = append(data, []string{
				name,
				string(entry.Type),
				group.Label,
				formatRate(group.Rate),
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Correlated %d hyperparameter(s) over %d trial(s)\n", len(report.Correlations), report.NumTrials); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analyzed %s in %v\n", report.CSVPath, duration); err != nil {
		return err
	}
	return nil
}

// writeCorrelationCSV writes the correlation breakdown in CSV format.
func writeCorrelationCSV(w io.Writer, correlations map[string]schema.CorrelationEntry) error {
	header := []string{"param", "kind", "group", "rate"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, name := range sortedParamNames(correlations) {
			entry := correlations[name]
			for _, group := range correlationGroups(entry) {
				rec := []string{
					name,
					string(entry.Type),
					group.Label,
					formatRate(group.Rate),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
