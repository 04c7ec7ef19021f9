//go:build basic

// Package integration contains integration tests for sweeplens.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"encoding/csv"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIssuesCSVVerification runs sweeplens issues --output csv on a sweep
// with known anomalies and verifies the detected counts per issue type.
func TestIssuesCSVVerification(t *testing.T) {
	csvPath := writeSampleSweepCSV(t, t.TempDir())

	sweeplensPath := getSweeplensBinary()
	cmd := exec.Command(sweeplensPath, "issues", csvPath, "--output", "csv", "--history-backend", "none")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(stdout.String())).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	// Header first, then one record per issue
	assert.Equal(t, []string{"trial_id", "issue_type", "severity", "details", "hyperparams"}, records[0])

	counts := make(map[string]int)
	for _, rec := range records[1:] {
		counts[rec[1]]++
	}

	// trial_2 has missing losses, trial_3 has a NaN val_loss
	assert.Equal(t, 2, counts["nan_or_inf_metric"])
	// trial_2 did not complete
	assert.Equal(t, 1, counts["failed_trial"])
	// trial_4 has val/train ratio 0.80/0.25 = 3.2
	assert.Equal(t, 1, counts["overfitting_suspect"])
	// trial_2 sits at the bottom decile for both epochs and runtime
	assert.Equal(t, 1, counts["short_run"])
}

// TestSummaryJSONVerification checks the structured summary document shape.
func TestSummaryJSONVerification(t *testing.T) {
	csvPath := writeSampleSweepCSV(t, t.TempDir())

	sweeplensPath := getSweeplensBinary()
	cmd := exec.Command(sweeplensPath, "summary", csvPath, "--history-backend", "none")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, `"num_issues": 5`)
	assert.Contains(t, out, `"issues_by_type"`)
	assert.Contains(t, out, `"param_correlations"`)
	assert.Contains(t, out, `"severity_counts"`)
}
