// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteIssues prints the detected issues using the configured output format.
func (ow *OutWriter) WriteIssues(report *schema.SweepReport, cfg *contract.Config, duration time.Duration) error {
	return WriteIssueResults(report, cfg, duration)
}

// WriteCorrelations prints the per-hyperparameter issue rates using the
// configured output format.
func (ow *OutWriter) WriteCorrelations(report *schema.SweepReport, cfg *contract.Config, duration time.Duration) error {
	return WriteCorrelationResults(report, cfg, duration)
}

// WriteSummary prints the structured summary using the configured output format.
func (ow *OutWriter) WriteSummary(report *schema.SweepReport, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResults(report, cfg, duration)
}

// WriteRuns prints recorded history runs using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return WriteRunResults(runs, cfg)
}

// GetMaxDetailsWidth calculates the maximum width for the details column in
// table output based on terminal width.
func GetMaxDetailsWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the rank, trial, type, and severity columns plus
	// table borders and padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}
