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

// WriteRunResults outputs recorded history runs, dispatching based on the
// output format configured.
func WriteRunResults(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunCSV(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(runs, w)
		}, "Wrote table")
	}
}

// writeRunTable generates and writes the human-readable run list.
func writeRunTable(runs []schema.RunRecord, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "CSV", "Start", "Duration", "Status", "Trials", "Issues"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		duration := ""
		if run.RunDurationMs != nil {
			duration = (time.Duration(*run.RunDurationMs) * time.Millisecond).String()
		}
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			run.CSVPath,
			run.StartTime.Format(time.RFC3339),
			duration,
			run.Status,
			strconv.Itoa(int(run.NumTrials)),
			strconv.Itoa(int(run.NumIssues)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d recorded run(s)\n", len(runs))
	return err
}

// writeRunCSV writes the run list in CSV format.
func writeRunCSV(w io.Writer, runs []schema.RunRecord) error {
	header := []string{
		"run_id",
		"csv_path",
		"start_time",
		"end_time",
		"duration_ms",
		"status",
		"num_trials",
		"num_issues",
		"num_nan_or_inf",
		"num_failed",
		"num_overfit",
		"num_short_run",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, run := range runs {
			endTime := ""
			if run.EndTime != nil {
				endTime = run.EndTime.Format(time.RFC3339)
			}
			duration := ""
			if run.RunDurationMs != nil {
				duration = strconv.Itoa(int(*run.RunDurationMs))
			}
			rec := []string{
				strconv.FormatInt(run.RunID, 10),
				run.CSVPath,
				run.StartTime.Format(time.RFC3339),
				endTime,
				duration,
				run.Status,
				strconv.Itoa(int(run.NumTrials)),
				strconv.Itoa(int(run.NumIssues)),
				strconv.Itoa(int(run.NumNaNOrInf)),
				strconv.Itoa(int(run.NumFailed)),
				strconv.Itoa(int(run.NumOverfit)),
				strconv.Itoa(int(run.NumShortRun)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
