package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// formatHyperparams renders a hyperparameter snapshot as "k=v" pairs in
// key order so the output is stable.
func formatHyperparams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, schema.FormatValue(params[k])))
	}
	return strings.Join(parts, ", ")
}

// formatRate renders an issue rate with fixed precision.
func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}

// correlationGroups flattens a correlation entry into its labeled groups,
// regardless of whether the column was binned or grouped by exact value.
func correlationGroups(entry schema.CorrelationEntry) []schema.RateBucket {
	if entry.Type == schema.NumericCorrelation {
		return entry.Buckets
	}
	return entry.Values
}

// sortedParamNames returns the correlation map keys in stable order.
func sortedParamNames(correlations map[string]schema.CorrelationEntry) []string {
	names := make([]string, 0, len(correlations))
	for name := range correlations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
