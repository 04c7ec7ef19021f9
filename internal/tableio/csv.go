// Package tableio loads sweep result tables from disk.
package tableio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"
)

// CSVLoader reads trial tables from CSV files.
type CSVLoader struct{}

// Compile-time check that CSVLoader implements the TableLoader interface.
var _ contract.TableLoader = (*CSVLoader)(nil)

// NewCSVLoader creates a new CSV-backed table loader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// Load reads the CSV file at path into a table. The first record is the
// header. Empty cells become missing values, numeric cells become float64
// (including NaN and Inf spellings), booleans become bool, and everything
// else stays a string.
func (l *CSVLoader) Load(ctx context.Context, path string) (*schema.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results CSV: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse results CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("results CSV %s has no header row", path)
	}

	header := records[0]
	tbl := &schema.Table{Columns: header}
	for _, record := range records[1:] {
		row := make(schema.Row, len(header))
		for i, col := range header {
			row[col] = parseCell(record[i])
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

// parseCell maps one CSV cell to its typed value.
func parseCell(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}
