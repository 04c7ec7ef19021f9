// Package main provides a performance benchmarking tool for the Sweeplens CLI.
// It generates synthetic sweep results CSVs of increasing size, measures
// execution times across command types, running each test multiple times and
// treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - sweeplens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to write the generated sweep CSVs to
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Sweep         string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	TrialCounts   map[string]int
	SweepNames    []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       2 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		SweepNames:    []string{"small", "medium", "large", "huge"},
		TrialCounts: map[string]int{
			"small":  100,
			"medium": 1000,
			"large":  10000,
			"huge":   100000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the run history using sweeplens history clear
	fmt.Printf("Clearing run history...\n")
	clearCmd := exec.Command("sweeplens", "history", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run history cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the sweeplens binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if sweeplens is available
	if _, err := exec.LookPath("sweeplens"); err != nil {
		return fmt.Errorf("sweeplens binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}

	return nil
}

// generateSweepCSV writes a synthetic sweep results file with numTrials rows.
// Roughly 5% of trials fail, 2% produce NaN losses, and a band of high
// learning rates overfits, so every detector has work to do.
func generateSweepCSV(path string, numTrials int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewSource(42))
	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"trial_id", "status", "lr", "batch_size", "optimizer", "train_loss", "val_loss", "epochs", "runtime_sec"}
	if err := w.Write(header); err != nil {
		return err
	}

	optimizers := []string{"adam", "sgd", "rmsprop"}
	for i := range numTrials {
		status := "completed"
		if rng.Float64() < 0.05 {
			status = "failed"
		}

		lr := []float64{0.0001, 0.001, 0.01, 0.1}[rng.Intn(4)]
		trainLoss := 0.2 + rng.Float64()*0.5
		valLoss := trainLoss * (0.9 + rng.Float64()*0.4)
		if lr >= 0.1 {
			valLoss = trainLoss * 2.0 // overfitting band
		}

		trainStr := strconv.FormatFloat(trainLoss, 'f', 4, 64)
		valStr := strconv.FormatFloat(valLoss, 'f', 4, 64)
		if rng.Float64() < 0.02 {
			valStr = "NaN"
		}

		rec := []string{
			fmt.Sprintf("trial_%d", i),
			status,
			strconv.FormatFloat(lr, 'g', -1, 64),
			strconv.Itoa([]int{32, 64, 128}[rng.Intn(3)]),
			optimizers[rng.Intn(3)],
			trainStr,
			valStr,
			strconv.Itoa(1 + rng.Intn(50)),
			strconv.FormatFloat(10+rng.Float64()*600, 'f', 1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmarks executes all benchmark tests across generated sweeps
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sweeps, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.SweepNames), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, sweep := range config.SweepNames {
		numTrials := config.TrialCounts[sweep]
		csvPath := filepath.Join(config.WorkDir, sweep+".csv")

		fmt.Printf("Generating %s sweep (%d trials)\n", sweep, numTrials)
		if err := generateSweepCSV(csvPath, numTrials); err != nil {
			fmt.Printf("Warning: failed to generate %s: %v\n", csvPath, err)
			continue
		}

		fmt.Printf("Benchmarking %s\n", sweep)
		for _, command := range []string{"issues", "correlations", "summary"} {
			result := runBenchmarkSuite(config, sweep, csvPath, command)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, sweep, csvPath, command string) BenchmarkResult {
	fmt.Printf("Running %s analysis on %s\n", command, sweep)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, csvPath, command, historyBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History-tracked runs
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Sweep:         sweep,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a sweeplens command multiple times with the specified
// history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, csvPath, command, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, csvPath, "--history-backend", historyBackend, "--output", "json", "--output-file", os.DevNull}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("sweeplens", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			cmdErr = cmd.Run()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/sweeplens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"sweep", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Sweep, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "issues", "Issue Detection:")
	printCommandSummary(results, "correlations", "Correlation Analysis:")
	printCommandSummary(results, "summary", "Sweep Summary:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-history: %s, Cold: %s, Warm: %s\n", result.Sweep, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
