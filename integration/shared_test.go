//go:build basic || database

package integration

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedSweeplensPath holds the path to a shared sweeplens binary built once for all tests.
	sharedSweeplensPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getSweeplensBinary returns the path to the sweeplens binary, building it once if needed.
func getSweeplensBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "sweeplens-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		sweeplensPath := filepath.Join(tempDir, "sweeplens")
		buildCmd := exec.Command("go", "build", "-o", sweeplensPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build sweeplens: %v", err))
		}

		sharedSweeplensPath = sweeplensPath
	})

	return sharedSweeplensPath
}

// writeSampleSweepCSV writes a small sweep results file with a known mix of
// completed, failed, NaN, and overfitting trials.
func writeSampleSweepCSV(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "results.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create sample CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	defer w.Flush()

	records := [][]string{
		{"trial_id", "status", "lr", "train_loss", "val_loss", "epochs", "runtime_sec"},
		{"trial_0", "completed", "0.001", "0.50", "0.55", "20", "300"},
		{"trial_1", "completed", "0.001", "0.48", "0.52", "20", "280"},
		{"trial_2", "failed", "0.01", "", "", "1", "5"},
		{"trial_3", "completed", "0.1", "0.30", "NaN", "15", "200"},
		{"trial_4", "completed", "0.1", "0.25", "0.80", "18", "260"},
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatalf("failed to write record: %v", err)
		}
	}

	return path
}
