// Package main provides a performance benchmarking tool for the Tradeoff CLI.
// It measures execution times across command types and worker counts,
// running each test multiple times, treating the first successful recorded run as cold
// and averaging the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - tradeoff binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory that holds the SQLite run history used for recorded runs
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (unrecorded average, cold recorded run and average of warm recorded runs).
type BenchmarkResult struct {
	Command   string
	Workers   int
	PlainTime string
	ColdTime  string
	WarmTime  string
}

// BenchmarkCase is one command line to time.
type BenchmarkCase struct {
	Command     string
	Description string
	Args        string
	Done        string // phrase the text output ends with on success
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir    string
	Timeout    time.Duration
	Workers    []int
	PlainRuns  int
	RecordRuns int
	Cases      []BenchmarkCase
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:    workDir,
		Timeout:    time.Minute,
		Workers:    []int{1, 4, 14},
		PlainRuns:  5,
		RecordRuns: 5,
		Cases: []BenchmarkCase{
			{"simulate", "baseline simulation", "", "Simulated in"},
			{"simulate", "lean with overrides", "--scenario lean --set \"teamSize:80,budget:120\"", "Simulated in"},
			{"compare", "planned vs actual", "--base case-optimistic --target case-actual", "Compared in"},
			{"sweep", "team size sweep", "--constraint teamSize", "Swept"},
			{"sweep", "user base sweep", "--constraint userBase --scenario enterprise", "Swept"},
			{"timeline", "engineering timeline", "--lens engineering", "Showed"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty run history
	fmt.Printf("Clearing run history...\n")
	clearCmd := exec.Command("tradeoff", "runs", "clear")
	clearCmd.Env = benchmarkEnv(config)
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

// checkPrerequisites verifies that the tradeoff binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("tradeoff"); err != nil {
		return fmt.Errorf("tradeoff binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", config.WorkDir)
	}
	return nil
}

// benchmarkEnv points the run history at the work directory.
func benchmarkEnv(config BenchmarkConfig) []string {
	return append(os.Environ(),
		"TRADEOFF_RUN_BACKEND=sqlite",
		"TRADEOFF_RUN_DB_CONNECT="+filepath.Join(config.WorkDir, "tradeoff_benchmark.db"),
	)
}

// runBenchmarks executes every case once per configured worker count
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d cases, %v timeout, workers %v, plain: %d runs, recorded: %d runs\n",
		len(config.Cases), config.Timeout, config.Workers, config.PlainRuns, config.RecordRuns)

	for _, c := range config.Cases {
		for _, workers := range config.Workers {
			results = append(results, runBenchmarkSuite(config, c, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs both unrecorded and recorded benchmarks for a case
func runBenchmarkSuite(config BenchmarkConfig, c BenchmarkCase, workers int) BenchmarkResult {
	fmt.Printf("Running %s with %d workers\n", c.Description, workers)

	runPhase := func(record bool, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, c, workers, record, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, plainAvg := runPhase(false, config.PlainRuns, "Plain")
	coldTime, warmAvg := runPhase(true, config.RecordRuns, "Recorded")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Plain average: %s, Cold time: %s, Warm average: %s\n", plainAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Command:   c.Description,
		Workers:   workers,
		PlainTime: plainAvg,
		ColdTime:  coldTimeStr,
		WarmTime:  warmAvg,
	}
}

// runBenchmark executes a tradeoff command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, c BenchmarkCase, workers int, record bool, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{c.Command, "--workers", fmt.Sprint(workers)}
	if record {
		args = append(args, "--record")
	}
	if c.Args != "" {
		args = append(args, parseArgs(c.Args)...)
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("tradeoff", args...)
		cmd.Env = benchmarkEnv(config)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), c.Done) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/tradeoff_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"case", "workers", "plain_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{result.Command, fmt.Sprint(result.Workers), result.PlainTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n\n")
	fmt.Printf("%-24s %8s %10s %10s %10s\n", "Case", "Workers", "Plain", "Cold", "Warm")
	for _, r := range results {
		fmt.Printf("%-24s %8d %10s %10s %10s\n", r.Command, r.Workers, r.PlainTime, r.ColdTime, r.WarmTime)
	}
}
