package runstore

import (
	"errors"
	"fmt"

	"github.com/huangsam/sweeplens/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history to a Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("run history is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total issues recorded: %d\n", status.TotalIssues)

	// Retrieve all recorded runs
	records, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Convert to Parquet format and write
	runs := parquet.ConvertRunRecords(records)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(runs, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d run(s) to: %s\n", len(runs), runsFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
